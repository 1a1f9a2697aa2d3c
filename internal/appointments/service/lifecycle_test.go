package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	appointmenterrors "notarynow/internal/appointments/errors"
	"notarynow/pkg/config"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
)

func storedAppointment(status config.AppointmentStatus) *model.Appointment {
	return &model.Appointment{
		ID:              "000000000000000000000001",
		CustomerID:      customerID,
		ProviderID:      providerID,
		ServiceID:       serviceID,
		ScheduledTime:   time.Now().UTC().Add(48 * time.Hour),
		DurationMinutes: 60,
		Status:          status,
		TotalCost:       75,
	}
}

func fixtureWith(status config.AppointmentStatus) *fixture {
	f := newFixture()
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Appointment, error) {
		if id != "000000000000000000000001" {
			return nil, appointmenterrors.ErrNotFound
		}
		return storedAppointment(status), nil
	}
	return f
}

func TestTransitionAllowedEdges(t *testing.T) {
	tests := []struct {
		from     config.AppointmentStatus
		to       config.AppointmentStatus
		callerID string
		role     config.Role
	}{
		{config.Pending, config.Confirmed, providerID, config.RoleNotary},
		{config.Pending, config.Cancelled, providerID, config.RoleNotary},
		{config.Pending, config.Cancelled, customerID, config.RoleCustomer},
		{config.Confirmed, config.Completed, providerID, config.RoleNotary},
		{config.Confirmed, config.Cancelled, providerID, config.RoleNotary},
		{config.Confirmed, config.Cancelled, customerID, config.RoleCustomer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_to_%s_as_%s", tt.from, tt.to, tt.role), func(t *testing.T) {
			f := fixtureWith(tt.from)
			appt, err := f.svc.Transition(context.Background(), "000000000000000000000001", tt.to, tt.callerID, tt.role)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if appt.Status != tt.to {
				t.Errorf("expected status %s, got %s", tt.to, appt.Status)
			}
			if len(f.dispatcher.changed) != 1 {
				t.Errorf("expected 1 status-change dispatch, got %d", len(f.dispatcher.changed))
			}
		})
	}
}

// Every (from, to) pair outside the enumerated edges is rejected, even with
// the most privileged caller on the appointment.
func TestTransitionClosure(t *testing.T) {
	statuses := []config.AppointmentStatus{
		config.Pending, config.Confirmed, config.Completed, config.Cancelled,
	}
	allowed := map[string]bool{
		"PENDING>CONFIRMED":   true,
		"PENDING>CANCELLED":   true,
		"CONFIRMED>COMPLETED": true,
		"CONFIRMED>CANCELLED": true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			if allowed[string(from)+">"+string(to)] {
				continue
			}
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				f := fixtureWith(from)
				_, err := f.svc.Transition(context.Background(), "000000000000000000000001", to, providerID, config.RoleNotary)
				if !apperrors.HasCode(err, apperrors.CodeInvalidTransition) {
					t.Fatalf("expected INVALID_TRANSITION, got %v", err)
				}
				if len(f.dispatcher.changed) != 0 {
					t.Error("expected no dispatch for a rejected transition")
				}
			})
		}
	}
}

// A customer cancelling a COMPLETED appointment must be rejected.
func TestTransitionCustomerCannotCancelCompleted(t *testing.T) {
	f := fixtureWith(config.Completed)

	_, err := f.svc.Transition(context.Background(), "000000000000000000000001", config.Cancelled, customerID, config.RoleCustomer)
	if !apperrors.HasCode(err, apperrors.CodeInvalidTransition) {
		t.Fatalf("expected INVALID_TRANSITION, got %v", err)
	}
}

func TestTransitionRoleGating(t *testing.T) {
	tests := []struct {
		name     string
		to       config.AppointmentStatus
		callerID string
		role     config.Role
	}{
		{"customer cannot confirm", config.Confirmed, customerID, config.RoleCustomer},
		{"customer cannot complete", config.Completed, customerID, config.RoleCustomer},
		{"other notary cannot confirm", config.Confirmed, "000000000000000000000098", config.RoleNotary},
		{"other customer cannot cancel", config.Cancelled, "000000000000000000000099", config.RoleCustomer},
		{"admin cannot confirm", config.Confirmed, "000000000000000000000097", config.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := config.Pending
			if tt.to == config.Completed {
				from = config.Confirmed
			}
			f := fixtureWith(from)
			_, err := f.svc.Transition(context.Background(), "000000000000000000000001", tt.to, tt.callerID, tt.role)
			if !apperrors.HasCode(err, apperrors.CodeInvalidTransition) {
				t.Fatalf("expected INVALID_TRANSITION, got %v", err)
			}
		})
	}
}

func TestTransitionStaleStatus(t *testing.T) {
	f := fixtureWith(config.Pending)
	f.repo.casFunc = func(ctx context.Context, id string, expected, next config.AppointmentStatus) error {
		return fmt.Errorf("appointment %s: %w", id, appointmenterrors.ErrStaleStatus)
	}

	_, err := f.svc.Transition(context.Background(), "000000000000000000000001", config.Confirmed, providerID, config.RoleNotary)
	if !apperrors.HasCode(err, apperrors.CodeInvalidTransition) {
		t.Fatalf("expected INVALID_TRANSITION on a lost race, got %v", err)
	}
	if len(f.dispatcher.changed) != 0 {
		t.Error("expected no dispatch when the write lost the race")
	}
}

func TestTransitionInvalidTarget(t *testing.T) {
	f := fixtureWith(config.Pending)

	_, err := f.svc.Transition(context.Background(), "000000000000000000000001", "ARCHIVED", providerID, config.RoleNotary)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestTransitionUnknownAppointment(t *testing.T) {
	f := fixtureWith(config.Pending)

	_, err := f.svc.Transition(context.Background(), "00000000000000000000000f", config.Confirmed, providerID, config.RoleNotary)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
