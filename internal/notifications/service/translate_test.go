package service

import (
	"strings"
	"testing"
	"time"

	"notarynow/pkg/config"
	"notarynow/pkg/model"
)

func sampleAppointment(status config.AppointmentStatus) *model.Appointment {
	return &model.Appointment{
		ID:              "000000000000000000000001",
		CustomerID:      "000000000000000000000010",
		ProviderID:      "000000000000000000000020",
		ServiceID:       "000000000000000000000030",
		ScheduledTime:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestTranslateAppointmentCreatedPairsRecipients(t *testing.T) {
	appt := sampleAppointment(config.Pending)
	notifications := TranslateAppointmentCreated(appt, "Document Authentication")

	if len(notifications) != 2 {
		t.Fatalf("expected customer and provider notices, got %d", len(notifications))
	}

	customer, notary := notifications[0], notifications[1]
	if customer.RecipientID != appt.CustomerID {
		t.Errorf("expected first notice for the customer, got %s", customer.RecipientID)
	}
	if notary.RecipientID != appt.ProviderID {
		t.Errorf("expected second notice for the provider, got %s", notary.RecipientID)
	}

	if customer.Title != "Appointment Request Submitted" {
		t.Errorf("unexpected customer title %q", customer.Title)
	}
	if !strings.Contains(customer.Message, "Document Authentication") {
		t.Errorf("customer message should name the service: %q", customer.Message)
	}
	if notary.Title != "New Appointment Request" {
		t.Errorf("unexpected provider title %q", notary.Title)
	}
	if !strings.Contains(notary.Message, "Jun 2, 2025") {
		t.Errorf("provider message should name the date: %q", notary.Message)
	}

	for _, n := range notifications {
		if n.Type != model.NotificationAppointmentCreated {
			t.Errorf("expected APPOINTMENT_CREATED, got %s", n.Type)
		}
		if n.ActionRef == "" {
			t.Error("expected an action token on appointment notices")
		}
	}
}

func TestTranslateStatusChanged(t *testing.T) {
	tests := []struct {
		status       config.AppointmentStatus
		notifType    model.NotificationType
		customerPart string
		notaryPart   string
	}{
		{config.Confirmed, model.NotificationAppointmentConfirmed, "confirmed by the notary", "You have confirmed"},
		{config.Cancelled, model.NotificationAppointmentCancelled, "has been cancelled", "has been cancelled"},
		{config.Completed, model.NotificationAppointmentCompleted, "leaving a review", "You have completed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			appt := sampleAppointment(tt.status)
			notifications := TranslateStatusChanged(appt, "Property Transfer")

			if len(notifications) != 2 {
				t.Fatalf("expected a customer and provider pair, got %d", len(notifications))
			}

			customer, notary := notifications[0], notifications[1]
			if customer.RecipientID != appt.CustomerID || notary.RecipientID != appt.ProviderID {
				t.Fatalf("recipients wrong: %s, %s", customer.RecipientID, notary.RecipientID)
			}
			if customer.Type != tt.notifType || notary.Type != tt.notifType {
				t.Errorf("expected type %s, got %s and %s", tt.notifType, customer.Type, notary.Type)
			}
			if !strings.Contains(customer.Message, tt.customerPart) {
				t.Errorf("customer message %q should contain %q", customer.Message, tt.customerPart)
			}
			if !strings.Contains(notary.Message, tt.notaryPart) {
				t.Errorf("provider message %q should contain %q", notary.Message, tt.notaryPart)
			}
			if !strings.Contains(customer.Message, "Property Transfer") {
				t.Errorf("customer message should name the service: %q", customer.Message)
			}
		})
	}
}

func TestTranslateStatusChangedPendingProducesNothing(t *testing.T) {
	appt := sampleAppointment(config.Pending)
	if got := TranslateStatusChanged(appt, "Property Transfer"); got != nil {
		t.Fatalf("expected no notices for PENDING, got %d", len(got))
	}
}

func TestTranslateAdminFanOut(t *testing.T) {
	adminIDs := []string{"a1", "a2", "a3"}

	pending := TranslateCertificationApprovalRequested("Jane Doe", "Real Estate Law", adminIDs)
	if len(pending) != len(adminIDs) {
		t.Fatalf("expected one notice per admin, got %d", len(pending))
	}
	for i, n := range pending {
		if n.RecipientID != adminIDs[i] {
			t.Errorf("notice %d for wrong admin: %s", i, n.RecipientID)
		}
		if n.Type != model.NotificationCertificationPending {
			t.Errorf("expected CERTIFICATION_PENDING, got %s", n.Type)
		}
	}

	registered := TranslateNewUserRegistered("John Smith", config.RoleNotary, adminIDs)
	if len(registered) != len(adminIDs) {
		t.Fatalf("expected one notice per admin, got %d", len(registered))
	}
	if !strings.Contains(registered[0].Message, "notary") {
		t.Errorf("message should lowercase the role: %q", registered[0].Message)
	}
	if !strings.Contains(registered[0].Message, "John Smith") {
		t.Errorf("message should name the user: %q", registered[0].Message)
	}
}

func TestTranslateCertificationApproved(t *testing.T) {
	notifications := TranslateCertificationApproved("000000000000000000000020", "Real Estate Law")

	if len(notifications) != 1 {
		t.Fatalf("expected a single notice, got %d", len(notifications))
	}
	n := notifications[0]
	if n.Type != model.NotificationCertificationApproved {
		t.Errorf("expected CERTIFICATION_APPROVED, got %s", n.Type)
	}
	if !strings.Contains(n.Message, "Real Estate Law") {
		t.Errorf("message should name the certification: %q", n.Message)
	}
}
