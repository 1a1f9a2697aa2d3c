package model

import (
	"time"

	"notarynow/pkg/config"
)

// Window is a wall-clock slot inside a single day, half-open [Start, End),
// both in "HH:MM" form. Windows may be stored unsorted and overlapping;
// the slot resolver normalizes them without mutating stored data.
type Window struct {
	Start string `json:"start" bson:"start" validate:"required,time_of_day"`
	End   string `json:"end" bson:"end" validate:"required,time_of_day"`
}

// DayTemplate is one day of a provider's recurring weekly availability.
type DayTemplate struct {
	Enabled bool     `json:"enabled" bson:"enabled"`
	Slots   []Window `json:"slots" bson:"slots" validate:"dive"`
}

// WeeklyTemplate is a provider's full recurring availability, keyed by
// weekday name. It is replaced wholesale on every save; there are no
// partial-day patches.
type WeeklyTemplate struct {
	ID         string                         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID string                         `json:"provider_id" bson:"provider_id" validate:"required"`
	Days       map[config.Weekday]DayTemplate `json:"days" bson:"days" validate:"required,len=7"`
	UpdatedAt  time.Time                      `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// FreeWindow is a concrete bookable interval on a calendar date, resolved
// from the weekly template minus existing appointments. Half-open [Start, End).
type FreeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether [start, end) fits entirely inside the window.
func (w FreeWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// FitsInWindow reports whether [start, start+duration) is fully contained in
// a single free window. A duration spanning two adjacent windows does not
// fit; there is no window joining.
func FitsInWindow(windows []FreeWindow, start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	for _, w := range windows {
		if w.Contains(start, end) {
			return true
		}
	}
	return false
}

// DefaultWeeklyTemplate is the onboarding default for providers who never
// saved a template: every day enabled with the configured windows.
func DefaultWeeklyTemplate(providerID string, windows []config.TimeRange) *WeeklyTemplate {
	slots := make([]Window, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, Window{Start: w.Start, End: w.End})
	}

	days := make(map[config.Weekday]DayTemplate, len(config.WeekOrder))
	for _, day := range config.WeekOrder {
		daySlots := make([]Window, len(slots))
		copy(daySlots, slots)
		days[day] = DayTemplate{Enabled: true, Slots: daySlots}
	}

	return &WeeklyTemplate{
		ProviderID: providerID,
		Days:       days,
	}
}

// WeekdayOf maps a calendar date to the template key for that day.
func WeekdayOf(t time.Time) config.Weekday {
	return config.Weekday(t.Weekday().String())
}
