package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "notarynow"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultKafkaBrokers          = "localhost:9092"
	DefaultNotificationsTopic    = "notarynow.notifications"
	DefaultNotificationsDLQTopic = "notarynow.notifications.dlq"
	DefaultNotificationQueueSize = 256

	// The platform runs in a single operating timezone; every wall-clock
	// window in a weekly template is interpreted in this location.
	DefaultOperatingTimezone = "UTC"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL = 10 * time.Second

	DefaultMinAppointmentMinutes = 15
	DefaultMaxAppointmentMinutes = 480

	// Onboarding default: a provider who never saved a template is bookable
	// every day across these windows.
	DefaultDayWindows = "09:00-12:00,13:00-17:00"

	DefaultPaginationLimit = 100

	// Base64 AES-256 key for sealing notification action tokens. Override
	// per deployment; the default only keeps local development working.
	DefaultSealerKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// WeekOrder lists the days in the order weekly templates are stored.
var WeekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type AppointmentStatus string

const (
	Pending   AppointmentStatus = "PENDING"
	Confirmed AppointmentStatus = "CONFIRMED"
	Completed AppointmentStatus = "COMPLETED"
	Cancelled AppointmentStatus = "CANCELLED"
)

type Role string

const (
	RoleCustomer  Role = "CUSTOMER"
	RoleNotary    Role = "NOTARY"
	RoleAdmin     Role = "ADMIN"
	RoleSecretary Role = "SECRETARY"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleNotary, RoleAdmin, RoleSecretary:
		return true
	}
	return false
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case Pending, Confirmed, Completed, Cancelled:
		return true
	}
	return false
}

func (d Weekday) Valid() bool {
	for _, day := range WeekOrder {
		if day == d {
			return true
		}
	}
	return false
}
