package model

import (
	"testing"
	"time"

	"notarynow/pkg/config"
)

func TestAppointmentEndTime(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	appt := &Appointment{ScheduledTime: start, DurationMinutes: 45}

	expected := time.Date(2025, 6, 2, 10, 45, 0, 0, time.UTC)
	if !appt.EndTime().Equal(expected) {
		t.Errorf("expected end %v, got %v", expected, appt.EndTime())
	}
}

func TestAppointmentTerminal(t *testing.T) {
	tests := []struct {
		status   config.AppointmentStatus
		terminal bool
	}{
		{config.Pending, false},
		{config.Confirmed, false},
		{config.Completed, true},
		{config.Cancelled, true},
	}

	for _, tt := range tests {
		appt := &Appointment{Status: tt.status}
		if appt.Terminal() != tt.terminal {
			t.Errorf("Terminal() for %s = %v, want %v", tt.status, appt.Terminal(), tt.terminal)
		}
	}
}

func TestBlocksSlot(t *testing.T) {
	for _, status := range []config.AppointmentStatus{config.Pending, config.Confirmed, config.Completed} {
		appt := &Appointment{Status: status}
		if !appt.BlocksSlot() {
			t.Errorf("expected %s to block its slot", status)
		}
	}

	cancelled := &Appointment{Status: config.Cancelled}
	if cancelled.BlocksSlot() {
		t.Error("expected CANCELLED to free its slot")
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name    string
		s1, e1  time.Time
		s2, e2  time.Time
		overlap bool
	}{
		{"identical", at(0), at(60), at(0), at(60), true},
		{"partial", at(0), at(60), at(30), at(90), true},
		{"contained", at(0), at(60), at(15), at(45), true},
		{"back to back", at(0), at(60), at(60), at(120), false},
		{"disjoint", at(0), at(30), at(90), at(120), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.overlap {
				t.Errorf("Overlaps = %v, want %v", got, tt.overlap)
			}
		})
	}
}

func TestBookingIntentMaterializes(t *testing.T) {
	intent := &BookingIntent{
		CustomerID:      "cust-1",
		ProviderID:      "prov-1",
		ServiceID:       "svc-1",
		ScheduledTime:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		TotalCost:       75,
		Notes:           "bring ID",
	}

	appt := intent.Appointment()
	if appt.Status != config.Pending {
		t.Errorf("expected new appointment to be PENDING, got %s", appt.Status)
	}
	if appt.TotalCost != 75 {
		t.Errorf("expected snapshot cost 75, got %f", appt.TotalCost)
	}
	if appt.ID != "" {
		t.Errorf("expected no ID before persistence, got %s", appt.ID)
	}
}

func TestDefaultWeeklyTemplate(t *testing.T) {
	windows := []config.TimeRange{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "17:00"},
	}
	tmpl := DefaultWeeklyTemplate("prov-1", windows)

	if len(tmpl.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(tmpl.Days))
	}
	for _, day := range config.WeekOrder {
		dt, ok := tmpl.Days[day]
		if !ok {
			t.Fatalf("missing day %s", day)
		}
		if !dt.Enabled {
			t.Errorf("expected %s enabled by default", day)
		}
		if len(dt.Slots) != 2 {
			t.Errorf("expected 2 default windows on %s, got %d", day, len(dt.Slots))
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if WeekdayOf(monday) != config.Monday {
		t.Errorf("expected Monday, got %s", WeekdayOf(monday))
	}
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	if WeekdayOf(sunday) != config.Sunday {
		t.Errorf("expected Sunday, got %s", WeekdayOf(sunday))
	}
}

func TestFreeWindowContains(t *testing.T) {
	win := FreeWindow{
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}

	inStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	inEnd := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	if !win.Contains(inStart, inEnd) {
		t.Error("expected exact fit to be contained")
	}

	lateEnd := time.Date(2025, 6, 2, 12, 1, 0, 0, time.UTC)
	if win.Contains(inStart, lateEnd) {
		t.Error("expected overrun not to be contained")
	}
}

func TestServiceOfferingPrice(t *testing.T) {
	custom := 120.0
	withCustom := &ServiceOffering{CustomPrice: &custom}
	if got := withCustom.Price(75); got != 120 {
		t.Errorf("expected custom price 120, got %f", got)
	}

	withoutCustom := &ServiceOffering{}
	if got := withoutCustom.Price(75); got != 75 {
		t.Errorf("expected base price 75, got %f", got)
	}
}
