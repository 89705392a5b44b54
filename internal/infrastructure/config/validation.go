package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator, grounded on the teacher's
// config/validation.go verbatim.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with struct-tag rules only.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks i against its `validate` struct tags.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Field(), e.Tag(), e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the fully-defaulted configuration.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
