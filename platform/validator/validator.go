// Package validator provides request validation infrastructure.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for struct validation.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with struct tag validation enabled.
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Struct validates a struct based on its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}
