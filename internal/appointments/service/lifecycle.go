package service

import (
	"context"
	"errors"
	"fmt"

	appointmenterrors "notarynow/internal/appointments/errors"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
)

// transitionRule names one edge of the state machine and which side of the
// appointment may trigger it.
type transitionRule struct {
	from     config.AppointmentStatus
	to       config.AppointmentStatus
	notary   bool
	customer bool
}

var transitionRules = []transitionRule{
	{from: config.Pending, to: config.Confirmed, notary: true},
	{from: config.Pending, to: config.Cancelled, notary: true, customer: true},
	{from: config.Confirmed, to: config.Completed, notary: true},
	{from: config.Confirmed, to: config.Cancelled, notary: true, customer: true},
}

func findRule(from, to config.AppointmentStatus) (transitionRule, bool) {
	for _, rule := range transitionRules {
		if rule.from == from && rule.to == to {
			return rule, true
		}
	}
	return transitionRule{}, false
}

// Transition applies one state-machine edge as a compare-and-set keyed on
// the status the caller observed. A stale status, a closed terminal state,
// or a caller who is not the permitted party all fail with
// INVALID_TRANSITION and leave the appointment untouched.
func (s *appointmentService) Transition(ctx context.Context, id string, next config.AppointmentStatus, callerID string, role config.Role) (*model.Appointment, error) {
	if !next.Valid() {
		return nil, apperrors.InvalidInput("Invalid target status: " + string(next))
	}

	appt, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Terminal() {
		return nil, apperrors.InvalidTransition(fmt.Sprintf(
			"Appointment is already %s; no further transitions are allowed", appt.Status,
		))
	}

	rule, ok := findRule(appt.Status, next)
	if !ok {
		return nil, apperrors.InvalidTransition(fmt.Sprintf(
			"Cannot transition from %s to %s", appt.Status, next,
		))
	}

	if !rule.allows(appt, callerID, role) {
		return nil, apperrors.InvalidTransition(fmt.Sprintf(
			"Your role may not transition this appointment to %s", next,
		))
	}

	if err := s.repo.UpdateStatusCAS(ctx, id, appt.Status, next); err != nil {
		if errors.Is(err, appointmenterrors.ErrStaleStatus) {
			return nil, apperrors.InvalidTransition("Appointment status changed concurrently; re-read and retry with the current status")
		}
		s.cfg.Log.Error("Failed to persist status transition",
			"id", id,
			"from", appt.Status,
			"to", next,
			"error", err,
		)
		return nil, mongotx.StoreError("Failed to update appointment status", err)
	}

	appt.Status = next

	s.cfg.Log.Info("Appointment transitioned",
		"id", appt.ID,
		"from", rule.from,
		"to", next,
		"caller_id", callerID,
		"role", role,
	)

	serviceName := s.serviceNameFor(ctx, appt.ServiceID)
	s.dispatcher.AppointmentStatusChanged(appt, serviceName)

	return appt, nil
}

// allows checks that the caller is the permitted party of this appointment.
// Being a notary is not enough; it must be this appointment's notary.
func (rule transitionRule) allows(appt *model.Appointment, callerID string, role config.Role) bool {
	switch role {
	case config.RoleNotary:
		return rule.notary && appt.ProviderID == callerID
	case config.RoleCustomer:
		return rule.customer && appt.CustomerID == callerID
	}
	return false
}

// serviceNameFor is best-effort; notifications still go out with an empty
// service name when the catalog read fails.
func (s *appointmentService) serviceNameFor(ctx context.Context, serviceID string) string {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil || svc == nil {
		s.cfg.Log.Warn("Failed to resolve service name for notification",
			"service_id", serviceID,
			"error", err,
		)
		return ""
	}
	return svc.Name
}
