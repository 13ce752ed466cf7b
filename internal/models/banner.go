package models

import "math"

// Banner is one tracked release schedule. It is identified by
// (Owner, Title); titles only need to be unique per owner.
type Banner struct {
	Image           []byte
	Title           string
	ReleaseDay      Weekday
	ReleaseTime     string
	CurrentEpisodes uint32
	TotalEpisodes   uint32
	Owner           string
}

// BannerField names one of the individually updatable banner fields.
type BannerField string

const (
	FieldCurrentEpisodes BannerField = "current_episodes"
	FieldTotalEpisodes   BannerField = "total_episodes"
	FieldReleaseDay      BannerField = "release_day"
	FieldReleaseTime     BannerField = "release_time"
)

// Action returns the audit action recorded when the field is updated.
func (f BannerField) Action() Action {
	switch f {
	case FieldCurrentEpisodes:
		return ActionUpdateCurrentEpisodes
	case FieldTotalEpisodes:
		return ActionUpdateTotalEpisodes
	case FieldReleaseDay:
		return ActionUpdateReleaseDay
	case FieldReleaseTime:
		return ActionUpdateReleaseTime
	}
	return ""
}

// Page selects a window of pageSize rows starting at pageIndex*pageSize.
type Page struct {
	Size  int
	Index int
}

// Offset saturates at math.MaxInt so that a page far past the end stays
// past the end instead of wrapping around.
func (p Page) Offset() int {
	if p.Size > 0 && p.Index > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Size * p.Index
}

func (p Page) Valid() bool {
	return p.Size > 0 && p.Index >= 0
}
