package model

import "time"

type NotificationType string

const (
	NotificationAppointmentCreated    NotificationType = "APPOINTMENT_CREATED"
	NotificationAppointmentConfirmed  NotificationType = "APPOINTMENT_CONFIRMED"
	NotificationAppointmentCancelled  NotificationType = "APPOINTMENT_CANCELLED"
	NotificationAppointmentCompleted  NotificationType = "APPOINTMENT_COMPLETED"
	NotificationCertificationPending  NotificationType = "CERTIFICATION_PENDING"
	NotificationCertificationApproved NotificationType = "CERTIFICATION_APPROVED"
	NotificationSystemAlert           NotificationType = "SYSTEM_ALERT"
)

// Notification is an outbound message for one recipient, produced per
// lifecycle transition and handed to the delivery collaborator. The engine
// guarantees construction and one delivery attempt, nothing more.
type Notification struct {
	ID          string           `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty"`
	RecipientID string           `json:"recipient_id" bson:"recipient_id" validate:"required"`
	Type        NotificationType `json:"type" bson:"type" validate:"required,oneof=APPOINTMENT_CREATED APPOINTMENT_CONFIRMED APPOINTMENT_CANCELLED APPOINTMENT_COMPLETED CERTIFICATION_PENDING CERTIFICATION_APPROVED SYSTEM_ALERT"`
	Title       string           `json:"title" bson:"title" validate:"required,max=200"`
	Message     string           `json:"message" bson:"message" validate:"required,max=1000"`
	ActionRef   string           `json:"action_ref,omitempty" bson:"action_ref,omitempty" validate:"omitempty,max=500"`
	Metadata    map[string]any   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Read        bool             `json:"read" bson:"read"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at" validate:"omitempty"`
}
