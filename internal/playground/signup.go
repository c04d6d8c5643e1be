package playground

import (
	"log/slog"

	"github.com/dmitrymomot/reactkit/pkg/validation"
)

// Signup form fields.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAge      = "age"
)

// NewSignupEngine returns a fresh engine for the signup form.
func NewSignupEngine(log *slog.Logger) *validation.Engine {
	return validation.MustNew([]validation.FieldRules{
		validation.Field(FieldEmail,
			validation.Required().WithMessage("Email is required"),
			validation.Email(),
		),
		validation.Field(FieldPassword,
			validation.Required().WithMessage("Password is required"),
			validation.MinLength(8),
			validation.Check(func(v any) any {
				s, _ := v.(string)
				for _, r := range s {
					if r >= '0' && r <= '9' {
						return true
					}
				}
				return "must contain a digit"
			}),
		),
		validation.Field(FieldAge,
			validation.Required().WithMessage("Age is required"),
			validation.Min(18).WithMessage("You must be at least 18"),
		),
	}, validation.WithLogger(log))
}
