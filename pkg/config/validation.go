package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	// Generate custom message based on tag
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s is below the minimum", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", e.Field)
	default:
		return fmt.Sprintf("%s failed validation", e.Field)
	}
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator provides configuration validation.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	return &Validator{validate: validator.New()}, nil
}

// ValidateConfig validates a configuration struct.
func (v *Validator) ValidateConfig(config *Config) error {
	if config == nil {
		return ValidationErrors{
			ValidationError{
				Field:   "config",
				Tag:     "required",
				Value:   nil,
				Message: "config is nil",
			},
		}
	}

	var validationErrors ValidationErrors

	err := v.validate.Struct(config)
	if err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errs {
				validationErrors = append(validationErrors, ValidationError{
					Field: e.Field(),
					Tag:   e.Tag(),
					Value: e.Value(),
				})
			}
		} else {
			validationErrors = append(validationErrors, ValidationError{
				Message: err.Error(),
			})
		}
	}

	validationErrors = append(validationErrors, v.validateCustomRules(config)...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateCustomRules performs rules the struct tags cannot express.
func (v *Validator) validateCustomRules(config *Config) ValidationErrors {
	var errs ValidationErrors

	for family := range config.Data.FamilyPaths {
		switch strings.ToLower(family) {
		case "gsm8k", "mathqa", "mawps", "custom":
		default:
			errs = append(errs, ValidationError{
				Field:   "Data.FamilyPaths",
				Tag:     "oneof",
				Value:   family,
				Message: fmt.Sprintf("unrecognized dataset family %q in family_paths", family),
			})
		}
	}

	for family, path := range config.Data.FamilyPaths {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, ValidationError{
				Field:   "Data.FamilyPaths",
				Tag:     "required",
				Value:   path,
				Message: fmt.Sprintf("family_paths entry for %q is empty", family),
			})
		}
	}

	return errs
}
