package model

import "time"

// SlotLock is an advisory lock serializing concurrent booking attempts for
// the same provider and start time. Acquisition is a unique-key insert;
// losing the insert race surfaces as a booking conflict.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
