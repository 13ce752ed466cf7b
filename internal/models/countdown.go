package models

import (
	"fmt"
	"time"
)

// TimeUntilRelease returns how long remains from now until the next airing
// of b, using ReleaseDay and an "HH:MM" ReleaseTime in now's location. A
// release later today counts as today; one already past today rolls over a
// week. ok is false when ReleaseDay or ReleaseTime cannot be interpreted.
func (b *Banner) TimeUntilRelease(now time.Time) (d time.Duration, ok bool) {
	if b.ReleaseDay.Index() < 0 {
		return 0, false
	}
	var hh, mm int
	if _, err := fmt.Sscanf(b.ReleaseTime, "%d:%d", &hh, &mm); err != nil {
		return 0, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, false
	}

	days := b.ReleaseDay.DaysUntil(WeekdayOf(now))
	y, m, dd := now.Date()
	target := time.Date(y, m, dd+days, hh, mm, 0, 0, now.Location())
	if days == 0 && now.After(target) {
		target = target.AddDate(0, 0, 7)
	}
	return target.Sub(now), true
}

// FormatCountdown renders d as "Xd Yh Zm Ws".
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "Next episode is out!"
	}
	d = d.Truncate(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, d/time.Second)
}
