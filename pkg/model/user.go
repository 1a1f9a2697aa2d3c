package model

import (
	"time"

	"notarynow/pkg/config"
)

// User is the read-model the engine keeps of the identity collaborator's
// accounts: enough to gate roles, fan notifications out to admins, and
// refuse bookings against deactivated providers. Account lifecycle itself
// is external.
type User struct {
	ID        string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string      `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string      `json:"email" bson:"email" validate:"required,email"`
	Role      config.Role `json:"role" bson:"role" validate:"required,oneof=CUSTOMER NOTARY ADMIN SECRETARY"`
	Active    bool        `json:"active" bson:"active"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at" validate:"omitempty"`
}
