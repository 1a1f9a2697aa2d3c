package service

import (
	"sort"
	"time"

	"notarynow/pkg/model"
)

// dayWindows materializes a day's configured windows onto a calendar date in
// the operating timezone. Windows come back sorted by start; stored data is
// never mutated. Overlapping configured windows are kept as-is (coverage
// union), duplicates in the output are harmless because booking only checks
// containment.
func dayWindows(day model.DayTemplate, date time.Time, loc *time.Location) []model.FreeWindow {
	if !day.Enabled || len(day.Slots) == 0 {
		return nil
	}

	windows := make([]model.FreeWindow, 0, len(day.Slots))
	for _, slot := range day.Slots {
		start, okStart := atTimeOfDay(date, slot.Start, loc)
		end, okEnd := atTimeOfDay(date, slot.End, loc)
		if !okStart || !okEnd || !start.Before(end) {
			continue
		}
		windows = append(windows, model.FreeWindow{Start: start, End: end})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
	return windows
}

func atTimeOfDay(date time.Time, hhmm string, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}

// subtractBusy removes every busy interval from the windows, splitting a
// window when a busy interval sits strictly inside it. No joining happens:
// a window only shrinks or splits, never merges with a neighbor.
func subtractBusy(windows []model.FreeWindow, busy []model.FreeWindow) []model.FreeWindow {
	free := windows
	for _, b := range busy {
		next := make([]model.FreeWindow, 0, len(free)+1)
		for _, w := range free {
			if !model.Overlaps(w.Start, w.End, b.Start, b.End) {
				next = append(next, w)
				continue
			}
			if b.Start.After(w.Start) {
				next = append(next, model.FreeWindow{Start: w.Start, End: b.Start})
			}
			if b.End.Before(w.End) {
				next = append(next, model.FreeWindow{Start: b.End, End: w.End})
			}
		}
		free = next
	}
	return free
}
