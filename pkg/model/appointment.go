package model

import (
	"time"

	"notarynow/pkg/config"
)

// Appointment is the central entity: a booked, stateful engagement between
// one customer and one notary for one service at one time. TotalCost is a
// snapshot taken at booking time and never recomputed.
type Appointment struct {
	ID              string                   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID      string                   `json:"customer_id" bson:"customer_id" validate:"required"`
	ProviderID      string                   `json:"provider_id" bson:"provider_id" validate:"required"`
	ServiceID       string                   `json:"service_id" bson:"service_id" validate:"required"`
	ScheduledTime   time.Time                `json:"scheduled_time" bson:"scheduled_time" validate:"required"`
	DurationMinutes int                      `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=1"`
	Status          config.AppointmentStatus `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	TotalCost       float64                  `json:"total_cost" bson:"total_cost" validate:"min=0"`
	Notes           string                   `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	CreatedAt       time.Time                `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// EndTime is the exclusive end of the appointment's interval.
func (a *Appointment) EndTime() time.Time {
	return a.ScheduledTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Terminal reports whether no further transitions may leave the status.
func (a *Appointment) Terminal() bool {
	return a.Status == config.Completed || a.Status == config.Cancelled
}

// BookingRequest is the wire shape of a customer booking attempt. The
// customer ID comes from the caller identity, never from the body.
type BookingRequest struct {
	ProviderID      string    `json:"provider_id" validate:"required,mongodb"`
	ServiceID       string    `json:"service_id" validate:"required,mongodb"`
	ScheduledTime   time.Time `json:"scheduled_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1"`
	Notes           string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// BookingIntent is an approved booking request produced by the validator and
// consumed to materialize an Appointment. It carries the resolved price so
// creation stamps the cost without a second catalog lookup.
type BookingIntent struct {
	CustomerID      string    `json:"customer_id" validate:"required"`
	ProviderID      string    `json:"provider_id" validate:"required"`
	ServiceID       string    `json:"service_id" validate:"required"`
	ScheduledTime   time.Time `json:"scheduled_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1"`
	Notes           string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
	TotalCost       float64   `json:"total_cost" validate:"min=0"`
}

// Appointment materializes the intent as a PENDING appointment.
func (in *BookingIntent) Appointment() *Appointment {
	return &Appointment{
		CustomerID:      in.CustomerID,
		ProviderID:      in.ProviderID,
		ServiceID:       in.ServiceID,
		ScheduledTime:   in.ScheduledTime,
		DurationMinutes: in.DurationMinutes,
		Status:          config.Pending,
		TotalCost:       in.TotalCost,
		Notes:           in.Notes,
	}
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// BlocksSlot reports whether the appointment consumes availability.
// Cancelled appointments free their window.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != config.Cancelled
}
