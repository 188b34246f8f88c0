// Package auth implements the local side of authentication: credential
// validation before anything touches the network, and the route guard that
// keeps anonymous requests away from the collection view.
//
// Token issuing and checking is entirely the backend's job — the token is
// opaque here.
package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mohmadimran/books-manager-frontend/internal/apperror"
)

// validate is a shared validator instance. validator.Validate is safe for
// concurrent use and caches struct metadata, so one instance serves the
// whole package.
var validate = validator.New()

// Password rules.
const MinPasswordLength = 6

// ValidateLogin checks login credentials locally.
//
// STOP ON FIRST FAILURE:
// Rules run in a fixed order and exactly one error is reported — the first
// one that fails. The messages are user-facing copy, surfaced verbatim in
// the form's inline error box.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.ValidationFailed("email", "Email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return apperror.ValidationFailed("email", "Invalid email format")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "Password is required")
	}
	return nil
}

// ValidateSignup checks registration input locally, in the same
// first-failure-wins style as ValidateLogin.
func ValidateSignup(name, email, password, confirmPassword string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.ValidationFailed("name", "Name is required")
	}
	if strings.TrimSpace(email) == "" {
		return apperror.ValidationFailed("email", "Email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return apperror.ValidationFailed("email", "Invalid email format")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "Password is required")
	}
	if err := validate.Var(password, "min=6"); err != nil {
		return apperror.ValidationFailed("password", "Password must be at least 6 characters")
	}
	if password != confirmPassword {
		return apperror.ValidationFailed("confirmPassword", "Passwords do not match")
	}
	return nil
}
