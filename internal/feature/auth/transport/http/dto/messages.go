package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingMessage translates a Gin binding error into a single caller-facing
// message. Only the first violation is reported; the validator checks fields
// in struct order, so a bad email is reported before a bad password.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Field() {
		case "Email":
			if fe.Tag() == "required" {
				return "Email is required"
			}
			return "Invalid email address"
		case "Password":
			if fe.Tag() == "min" {
				return "Password must be at least 6 characters"
			}
			return "Password is required"
		}
	}
	// Not JSON, wrong types, empty body, and similar parse failures
	return "Invalid request body"
}
