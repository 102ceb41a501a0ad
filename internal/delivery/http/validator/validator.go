// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can validate bound request bodies with struct tags.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator wraps a single validator instance; it is safe for concurrent use.
type Validator struct {
	validate *playground.Validate
}

// New creates the echo request validator.
func New() *Validator {
	return &Validator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
