package validator

import (
	"errors"
	"fmt"
	"regexp"
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

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type TemplateValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTemplateValidator(log *logger.Logger) *TemplateValidator {
	v := validator.New()

	if err := v.RegisterValidation("time_of_day", validateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'time_of_day' validator", "error", err)
	}

	log.Info("Template validator initialized successfully")

	return &TemplateValidator{
		validate: v,
		logger:   log,
	}
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeOfDayRegex.MatchString(fl.Field().String())
}

// Validate checks the full-week template: all seven days present, every
// window in HH:MM form with start strictly before end. Overlapping or
// unsorted windows within a day are tolerated; the slot resolver normalizes
// them at read time.
func (v *TemplateValidator) Validate(tmpl *model.WeeklyTemplate) error {
	if err := v.validate.Struct(tmpl); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	var dayErrors ValidationErrors
	for _, day := range config.WeekOrder {
		dt, ok := tmpl.Days[day]
		if !ok {
			dayErrors = append(dayErrors, ValidationError{
				Field:   string(day),
				Message: "day is missing; the full week must be submitted",
			})
			continue
		}
		for i, w := range dt.Slots {
			if !timeOfDayRegex.MatchString(w.Start) || !timeOfDayRegex.MatchString(w.End) {
				dayErrors = append(dayErrors, ValidationError{
					Field:   string(day),
					Message: fmt.Sprintf("window %d must use HH:MM 24-hour format", i+1),
				})
				continue
			}
			if w.Start >= w.End {
				dayErrors = append(dayErrors, ValidationError{
					Field:   string(day),
					Message: fmt.Sprintf("window %d must start before it ends (%s-%s)", i+1, w.Start, w.End),
				})
			}
		}
	}

	if len(dayErrors) > 0 {
		return dayErrors
	}
	return nil
}

func (v *TemplateValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "len":
			message = fmt.Sprintf("%s must contain exactly %s entries", err.Field(), err.Param())
		case "time_of_day":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
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
