package service

import (
	"fmt"
	"strings"
	"time"

	"notarynow/pkg/config"
	"notarynow/pkg/model"
	"notarynow/pkg/sealer"
)

const scheduledLayout = "Jan 2, 2006 at 15:04"

// TranslateAppointmentCreated produces the customer and provider notices
// for a freshly booked appointment.
func TranslateAppointmentCreated(appt *model.Appointment, serviceName string) []*model.Notification {
	return []*model.Notification{
		{
			RecipientID: appt.CustomerID,
			Type:        model.NotificationAppointmentCreated,
			Title:       "Appointment Request Submitted",
			Message:     fmt.Sprintf("Your appointment request for %s has been submitted and is pending approval.", serviceName),
			ActionRef:   actionRef(appt.CustomerID, appt.ID),
			Metadata:    appointmentMetadata(appt, "customer"),
		},
		{
			RecipientID: appt.ProviderID,
			Type:        model.NotificationAppointmentCreated,
			Title:       "New Appointment Request",
			Message: fmt.Sprintf("You have a new appointment request for %s scheduled for %s.",
				serviceName, appt.ScheduledTime.Format(scheduledLayout)),
			ActionRef: actionRef(appt.ProviderID, appt.ID),
			Metadata:  appointmentMetadata(appt, "notary"),
		},
	}
}

// TranslateStatusChanged produces one customer-facing and one
// provider-facing notice describing the new status. Completion asks the
// customer for a review.
func TranslateStatusChanged(appt *model.Appointment, serviceName string) []*model.Notification {
	var (
		notifType                      model.NotificationType
		customerTitle, customerMessage string
		notaryTitle, notaryMessage     string
	)

	switch appt.Status {
	case config.Confirmed:
		notifType = model.NotificationAppointmentConfirmed
		customerTitle = "Appointment Confirmed"
		customerMessage = fmt.Sprintf("Your %s appointment has been confirmed by the notary.", serviceName)
		notaryTitle = "Appointment Confirmed"
		notaryMessage = fmt.Sprintf("You have confirmed the %s appointment.", serviceName)
	case config.Cancelled:
		notifType = model.NotificationAppointmentCancelled
		customerTitle = "Appointment Cancelled"
		customerMessage = fmt.Sprintf("Your %s appointment has been cancelled.", serviceName)
		notaryTitle = "Appointment Cancelled"
		notaryMessage = fmt.Sprintf("The %s appointment has been cancelled.", serviceName)
	case config.Completed:
		notifType = model.NotificationAppointmentCompleted
		customerTitle = "Appointment Completed"
		customerMessage = fmt.Sprintf("Your %s appointment has been completed. Please consider leaving a review.", serviceName)
		notaryTitle = "Appointment Completed"
		notaryMessage = fmt.Sprintf("You have completed the %s appointment.", serviceName)
	default:
		return nil
	}

	return []*model.Notification{
		{
			RecipientID: appt.CustomerID,
			Type:        notifType,
			Title:       customerTitle,
			Message:     customerMessage,
			ActionRef:   actionRef(appt.CustomerID, appt.ID),
			Metadata:    appointmentMetadata(appt, "customer"),
		},
		{
			RecipientID: appt.ProviderID,
			Type:        notifType,
			Title:       notaryTitle,
			Message:     notaryMessage,
			ActionRef:   actionRef(appt.ProviderID, appt.ID),
			Metadata:    appointmentMetadata(appt, "notary"),
		},
	}
}

// TranslateCertificationApprovalRequested fans a pending-review notice out
// to every administrator.
func TranslateCertificationApprovalRequested(notaryName, certificationName string, adminIDs []string) []*model.Notification {
	notifications := make([]*model.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		notifications = append(notifications, &model.Notification{
			RecipientID: adminID,
			Type:        model.NotificationCertificationPending,
			Title:       "Certification Pending Review",
			Message:     fmt.Sprintf("%s has submitted the %s certification for review.", notaryName, certificationName),
			Metadata: map[string]any{
				"certification_name": certificationName,
				"audience":           "admin",
			},
		})
	}
	return notifications
}

func TranslateCertificationApproved(notaryID, certificationName string) []*model.Notification {
	return []*model.Notification{
		{
			RecipientID: notaryID,
			Type:        model.NotificationCertificationApproved,
			Title:       "Certification Approved",
			Message:     fmt.Sprintf("Your %s certification has been approved by the administrator.", certificationName),
			Metadata: map[string]any{
				"certification_name": certificationName,
				"audience":           "approval",
			},
		},
	}
}

// TranslateNewUserRegistered fans a registration notice out to every
// administrator.
func TranslateNewUserRegistered(userName string, role config.Role, adminIDs []string) []*model.Notification {
	notifications := make([]*model.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		notifications = append(notifications, &model.Notification{
			RecipientID: adminID,
			Type:        model.NotificationSystemAlert,
			Title:       "New User Registration",
			Message:     fmt.Sprintf("A new %s has registered: %s", strings.ToLower(string(role)), userName),
			Metadata: map[string]any{
				"audience": "system",
			},
		})
	}
	return notifications
}

// actionRef is best-effort; a notice without a deep link is still useful.
func actionRef(recipientID, appointmentID string) string {
	token, err := sealer.CreateActionToken(recipientID, appointmentID)
	if err != nil {
		return ""
	}
	return token
}

func appointmentMetadata(appt *model.Appointment, audience string) map[string]any {
	return map[string]any{
		"appointment_id": appt.ID,
		"status":         string(appt.Status),
		"scheduled_time": appt.ScheduledTime.Format(time.RFC3339),
		"audience":       audience,
	}
}
