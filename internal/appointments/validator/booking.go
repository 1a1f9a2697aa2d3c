package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"notarynow/pkg/config"
	"notarynow/pkg/logger"
	"notarynow/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// BookingValidator checks the shape of a booking request: IDs, duration
// bounds, note length. Business rules (future start, offering, slot fit)
// belong to the service and run after this.
type BookingValidator struct {
	validate *validator.Validate
	cfg      *config.Config
	logger   *logger.Logger
}

func NewBookingValidator(cfg *config.Config) *BookingValidator {
	v := validator.New()

	cfg.Log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		cfg:      cfg,
		logger:   cfg.Log,
	}
}

func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	var durationErrors ValidationErrors
	if req.DurationMinutes < v.cfg.MinAppointmentMinutes {
		durationErrors = append(durationErrors, ValidationError{
			Field:   "duration_minutes",
			Message: fmt.Sprintf("must be at least %d minutes", v.cfg.MinAppointmentMinutes),
		})
	}
	if req.DurationMinutes > v.cfg.MaxAppointmentMinutes {
		durationErrors = append(durationErrors, ValidationError{
			Field:   "duration_minutes",
			Message: fmt.Sprintf("must be at most %d minutes", v.cfg.MaxAppointmentMinutes),
		})
	}

	if len(durationErrors) > 0 {
		return durationErrors
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
