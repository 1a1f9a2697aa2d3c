package validator

import (
	"strings"
	"testing"

	"notarynow/pkg/config"
	"notarynow/pkg/logger"
	"notarynow/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func fullWeek() map[config.Weekday]model.DayTemplate {
	days := make(map[config.Weekday]model.DayTemplate, 7)
	for _, day := range config.WeekOrder {
		days[day] = model.DayTemplate{
			Enabled: true,
			Slots:   []model.Window{{Start: "09:00", End: "12:00"}},
		}
	}
	return days
}

func TestValidateAcceptsFullWeek(t *testing.T) {
	v := NewTemplateValidator(testLogger())
	tmpl := &model.WeeklyTemplate{ProviderID: "prov-1", Days: fullWeek()}

	if err := v.Validate(tmpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsPartialWeek(t *testing.T) {
	v := NewTemplateValidator(testLogger())
	days := fullWeek()
	delete(days, config.Sunday)
	tmpl := &model.WeeklyTemplate{ProviderID: "prov-1", Days: days}

	if err := v.Validate(tmpl); err == nil {
		t.Fatal("expected error for 6-day template")
	}
}

func TestValidateNamesOffendingDay(t *testing.T) {
	v := NewTemplateValidator(testLogger())
	days := fullWeek()
	days[config.Wednesday] = model.DayTemplate{
		Enabled: true,
		Slots:   []model.Window{{Start: "14:00", End: "14:00"}},
	}
	tmpl := &model.WeeklyTemplate{ProviderID: "prov-1", Days: days}

	err := v.Validate(tmpl)
	if err == nil {
		t.Fatal("expected error for zero-length window")
	}
	if !strings.Contains(err.Error(), "Wednesday") {
		t.Errorf("expected the error to name Wednesday, got: %v", err)
	}
}

func TestValidateRejectsBadTimeFormat(t *testing.T) {
	v := NewTemplateValidator(testLogger())

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"hour out of range", "25:00", "26:00"},
		{"minute out of range", "09:61", "10:00"},
		{"not a time", "morning", "noon"},
		{"12-hour format", "9:00", "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := fullWeek()
			days[config.Friday] = model.DayTemplate{
				Enabled: true,
				Slots:   []model.Window{{Start: tt.start, End: tt.end}},
			}
			tmpl := &model.WeeklyTemplate{ProviderID: "prov-1", Days: days}

			if err := v.Validate(tmpl); err == nil {
				t.Errorf("expected error for window %s-%s", tt.start, tt.end)
			}
		})
	}
}

func TestValidateToleratesOverlappingWindows(t *testing.T) {
	v := NewTemplateValidator(testLogger())
	days := fullWeek()
	days[config.Monday] = model.DayTemplate{
		Enabled: true,
		Slots: []model.Window{
			{Start: "09:00", End: "12:00"},
			{Start: "11:00", End: "14:00"},
		},
	}
	tmpl := &model.WeeklyTemplate{ProviderID: "prov-1", Days: days}

	if err := v.Validate(tmpl); err != nil {
		t.Fatalf("overlapping windows must be tolerated, got: %v", err)
	}
}
