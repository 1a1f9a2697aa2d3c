package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"notarynow/pkg/config"
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

type CatalogValidator struct {
	validate *validator.Validate
	cfg      *config.Config
}

func NewCatalogValidator(cfg *config.Config) *CatalogValidator {
	return &CatalogValidator{
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (v *CatalogValidator) ValidateService(svc *model.Service) error {
	return v.translate(v.validate.Struct(svc))
}

func (v *CatalogValidator) ValidateOffering(offering *model.ServiceOffering) error {
	return v.translate(v.validate.Struct(offering))
}

func (v *CatalogValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()

		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", fieldErr.Field())
		}

		out = append(out, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}

	return out
}
