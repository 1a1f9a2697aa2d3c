package service

import (
	"testing"
	"time"

	"notarynow/pkg/model"
)

func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestDayWindowsSortsUnsortedSlots(t *testing.T) {
	day := model.DayTemplate{
		Enabled: true,
		Slots: []model.Window{
			{Start: "13:00", End: "17:00"},
			{Start: "09:00", End: "12:00"},
		},
	}

	windows := dayWindows(day, mondayAt(0, 0), time.UTC)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if !windows[0].Start.Equal(mondayAt(9, 0)) {
		t.Errorf("expected first window at 09:00, got %v", windows[0].Start)
	}
}

func TestDayWindowsKeepsOverlappingSlots(t *testing.T) {
	day := model.DayTemplate{
		Enabled: true,
		Slots: []model.Window{
			{Start: "09:00", End: "12:00"},
			{Start: "11:00", End: "14:00"},
		},
	}

	windows := dayWindows(day, mondayAt(0, 0), time.UTC)
	if len(windows) != 2 {
		t.Fatalf("expected overlapping windows preserved, got %d", len(windows))
	}
}

func TestDayWindowsDisabled(t *testing.T) {
	day := model.DayTemplate{Enabled: false, Slots: []model.Window{{Start: "09:00", End: "12:00"}}}
	if windows := dayWindows(day, mondayAt(0, 0), time.UTC); windows != nil {
		t.Errorf("expected nil for disabled day, got %v", windows)
	}
}

func TestSubtractBusySplitsWindow(t *testing.T) {
	windows := []model.FreeWindow{{Start: mondayAt(9, 0), End: mondayAt(12, 0)}}
	busy := []model.FreeWindow{{Start: mondayAt(10, 0), End: mondayAt(10, 30)}}

	free := subtractBusy(windows, busy)
	if len(free) != 2 {
		t.Fatalf("expected split into 2 windows, got %d: %v", len(free), free)
	}
	if !free[0].End.Equal(mondayAt(10, 0)) || !free[1].Start.Equal(mondayAt(10, 30)) {
		t.Errorf("unexpected split boundaries: %v", free)
	}
}

func TestSubtractBusyTrimsEdges(t *testing.T) {
	windows := []model.FreeWindow{{Start: mondayAt(9, 0), End: mondayAt(12, 0)}}

	leading := subtractBusy(windows, []model.FreeWindow{{Start: mondayAt(8, 0), End: mondayAt(10, 0)}})
	if len(leading) != 1 || !leading[0].Start.Equal(mondayAt(10, 0)) {
		t.Errorf("expected leading trim to [10:00, 12:00), got %v", leading)
	}

	trailing := subtractBusy(windows, []model.FreeWindow{{Start: mondayAt(11, 0), End: mondayAt(13, 0)}})
	if len(trailing) != 1 || !trailing[0].End.Equal(mondayAt(11, 0)) {
		t.Errorf("expected trailing trim to [09:00, 11:00), got %v", trailing)
	}
}

func TestSubtractBusyFullCover(t *testing.T) {
	windows := []model.FreeWindow{{Start: mondayAt(9, 0), End: mondayAt(12, 0)}}
	busy := []model.FreeWindow{{Start: mondayAt(9, 0), End: mondayAt(12, 0)}}

	if free := subtractBusy(windows, busy); len(free) != 0 {
		t.Errorf("expected fully covered window removed, got %v", free)
	}
}

func TestFitsInWindowNoJoining(t *testing.T) {
	// Two adjacent free windows; a duration spanning the boundary must not fit.
	windows := []model.FreeWindow{
		{Start: mondayAt(9, 0), End: mondayAt(10, 0)},
		{Start: mondayAt(10, 0), End: mondayAt(11, 0)},
	}

	if model.FitsInWindow(windows, mondayAt(9, 30), 60*time.Minute) {
		t.Error("expected 09:30+60m to be rejected, it spans two windows")
	}
	if !model.FitsInWindow(windows, mondayAt(9, 0), 60*time.Minute) {
		t.Error("expected 09:00+60m to fit the first window exactly")
	}
	if !model.FitsInWindow(windows, mondayAt(10, 15), 30*time.Minute) {
		t.Error("expected 10:15+30m to fit the second window")
	}
}
