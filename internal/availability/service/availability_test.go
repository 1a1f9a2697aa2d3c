package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	availabilityerrors "notarynow/internal/availability/errors"
	"notarynow/internal/availability/validator"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/logger"
	"notarynow/pkg/model"
)

type mockTemplateRepository struct {
	findByProviderFunc func(ctx context.Context, providerID string) (*model.WeeklyTemplate, error)
	replaceFunc        func(ctx context.Context, tmpl *model.WeeklyTemplate) error
}

func (m *mockTemplateRepository) FindByProvider(ctx context.Context, providerID string) (*model.WeeklyTemplate, error) {
	if m.findByProviderFunc != nil {
		return m.findByProviderFunc(ctx, providerID)
	}
	return nil, availabilityerrors.ErrTemplateNotFound
}

func (m *mockTemplateRepository) Replace(ctx context.Context, tmpl *model.WeeklyTemplate) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, tmpl)
	}
	return nil
}

func (m *mockTemplateRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.SessionContext(nil))
}

type mockAppointmentReader struct {
	findBlockingFunc func(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error)
}

func (m *mockAppointmentReader) FindBlocking(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error) {
	if m.findBlockingFunc != nil {
		return m.findBlockingFunc(ctx, providerID, from, to)
	}
	return []*model.Appointment{}, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})

	return &config.Config{
		Log:               log,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		OperatingTimezone: "UTC",
		DefaultDayWindows: []config.TimeRange{
			{Start: "09:00", End: "12:00"},
			{Start: "13:00", End: "17:00"},
		},
	}
}

func newTestService(repo *mockTemplateRepository, reader *mockAppointmentReader, cfg *config.Config) AvailabilityService {
	return NewAvailabilityService(repo, reader, validator.NewTemplateValidator(cfg.Log), cfg)
}

// mondayTemplate returns a template with Monday 09:00-12:00 only and every
// other day disabled.
func mondayTemplate(providerID string) *model.WeeklyTemplate {
	days := make(map[config.Weekday]model.DayTemplate, 7)
	for _, day := range config.WeekOrder {
		days[day] = model.DayTemplate{Enabled: false, Slots: []model.Window{}}
	}
	days[config.Monday] = model.DayTemplate{
		Enabled: true,
		Slots:   []model.Window{{Start: "09:00", End: "12:00"}},
	}
	return &model.WeeklyTemplate{ProviderID: providerID, Days: days}
}

func TestGetTemplateDefaultsWhenUnsaved(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockTemplateRepository{}, &mockAppointmentReader{}, cfg)

	tmpl, err := svc.GetTemplate(context.Background(), "prov-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tmpl.Days) != 7 {
		t.Fatalf("expected 7 days in default template, got %d", len(tmpl.Days))
	}
	for day, dt := range tmpl.Days {
		if !dt.Enabled {
			t.Errorf("expected %s enabled in default template", day)
		}
		if len(dt.Slots) != 2 {
			t.Errorf("expected 2 default windows on %s, got %d", day, len(dt.Slots))
		}
	}
}

func TestReplaceTemplateRoleGating(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockTemplateRepository{}, &mockAppointmentReader{}, cfg)
	tmpl := mondayTemplate("prov-1")

	tests := []struct {
		name     string
		callerID string
		role     config.Role
		wantCode string
	}{
		{"customer rejected", "cust-1", config.RoleCustomer, apperrors.CodeForbidden},
		{"other notary rejected", "prov-2", config.RoleNotary, apperrors.CodeForbidden},
		{"admin rejected", "admin-1", config.RoleAdmin, apperrors.CodeForbidden},
		{"owner accepted", "prov-1", config.RoleNotary, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ReplaceTemplate(context.Background(), "prov-1", tmpl, tt.callerID, tt.role)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestReplaceTemplateRejectsInvertedWindow(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockTemplateRepository{}, &mockAppointmentReader{}, cfg)

	tmpl := mondayTemplate("prov-1")
	days := tmpl.Days
	days[config.Tuesday] = model.DayTemplate{
		Enabled: true,
		Slots:   []model.Window{{Start: "15:00", End: "10:00"}},
	}

	err := svc.ReplaceTemplate(context.Background(), "prov-1", tmpl, "prov-1", config.RoleNotary)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details == nil {
		t.Fatal("expected details naming the offending day")
	}
}

func TestFreeSlotsDisabledDay(t *testing.T) {
	cfg := testConfig()
	repo := &mockTemplateRepository{
		findByProviderFunc: func(ctx context.Context, providerID string) (*model.WeeklyTemplate, error) {
			return mondayTemplate(providerID), nil
		},
	}
	svc := newTestService(repo, &mockAppointmentReader{}, cfg)

	// 2025-06-03 is a Tuesday, disabled in mondayTemplate.
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	slots, err := svc.FreeSlots(context.Background(), "prov-1", tuesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on a disabled day, got %v", slots)
	}
}

// Scenario: Monday 09:00-12:00 template, one confirmed 10:00-10:30
// appointment. The resolver must return [09:00, 10:00) and [10:30, 12:00).
func TestFreeSlotsSubtractsAppointments(t *testing.T) {
	cfg := testConfig()
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	repo := &mockTemplateRepository{
		findByProviderFunc: func(ctx context.Context, providerID string) (*model.WeeklyTemplate, error) {
			return mondayTemplate(providerID), nil
		},
	}
	reader := &mockAppointmentReader{
		findBlockingFunc: func(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error) {
			return []*model.Appointment{
				{
					ProviderID:      providerID,
					ScheduledTime:   monday.Add(10 * time.Hour),
					DurationMinutes: 30,
					Status:          config.Confirmed,
				},
			}, nil
		},
	}
	svc := newTestService(repo, reader, cfg)

	slots, err := svc.FreeSlots(context.Background(), "prov-1", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 free windows, got %d: %v", len(slots), slots)
	}

	want := []model.FreeWindow{
		{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
		{Start: monday.Add(10*time.Hour + 30*time.Minute), End: monday.Add(12 * time.Hour)},
	}
	for i, w := range want {
		if !slots[i].Start.Equal(w.Start) || !slots[i].End.Equal(w.End) {
			t.Errorf("window %d = [%v, %v), want [%v, %v)", i, slots[i].Start, slots[i].End, w.Start, w.End)
		}
	}
}

func TestFreeSlotsCancelledDoesNotBlock(t *testing.T) {
	cfg := testConfig()
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	repo := &mockTemplateRepository{
		findByProviderFunc: func(ctx context.Context, providerID string) (*model.WeeklyTemplate, error) {
			return mondayTemplate(providerID), nil
		},
	}
	reader := &mockAppointmentReader{
		findBlockingFunc: func(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error) {
			return []*model.Appointment{
				{
					ProviderID:      providerID,
					ScheduledTime:   monday.Add(10 * time.Hour),
					DurationMinutes: 30,
					Status:          config.Cancelled,
				},
			}, nil
		},
	}
	svc := newTestService(repo, reader, cfg)

	slots, err := svc.FreeSlots(context.Background(), "prov-1", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("expected the full window back, got %v", slots)
	}
	if !slots[0].Start.Equal(monday.Add(9*time.Hour)) || !slots[0].End.Equal(monday.Add(12*time.Hour)) {
		t.Errorf("expected [09:00, 12:00), got [%v, %v)", slots[0].Start, slots[0].End)
	}
}

func TestFreeSlotsRangeRejectsInvertedRange(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockTemplateRepository{}, &mockAppointmentReader{}, cfg)

	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.FreeSlotsRange(context.Background(), "prov-1", from, to)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestFreeSlotsRangeDayCap(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockTemplateRepository{}, &mockAppointmentReader{}, cfg)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		days    int
		wantErr bool
	}{
		{"31 inclusive days allowed", 31, false},
		{"32 inclusive days rejected", 32, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			to := from.AddDate(0, 0, tc.days-1)
			_, err := svc.FreeSlotsRange(context.Background(), "prov-1", from, to)
			if tc.wantErr {
				if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
					t.Fatalf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
