package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a canonical English day name, Monday through Sunday.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in week order starting from Monday. A day's
// position in this slice is its index in the release-day ordering.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday accepts a day name in any letter case and returns its
// canonical form.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// Index returns the Monday-based position of d, or -1 for an unknown value.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// WeekdayOf converts a time.Weekday (Sunday-based) to Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[(int(t.Weekday())+6)%7]
}

// DaysUntil is the circular distance from today to d: 0 when d is today,
// 6 when d was yesterday.
func (d Weekday) DaysUntil(today Weekday) int {
	return (d.Index() - today.Index() + 7) % 7
}
