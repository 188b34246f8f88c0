// GO TESTING BASICS:
// 1. Test files MUST end in _test.go — Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
// 4. Run with: go test ./internal/apperror/ -v  (-v = verbose, shows each test name)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("email", "Email is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Upstream wraps its sentinel",
			err:       Upstream(ErrUnauthorized, "invalid token"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Upstream unavailable matches ErrUnavailable",
			err:       Upstream(ErrUnavailable, "service down"),
			target:    ErrUnavailable,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed does NOT match ErrUnauthorized",
			err:       ValidationFailed("password", "Password is required"),
			target:    ErrUnauthorized,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server-provided message survives",
			err:  Upstream(ErrUnavailable, "Invalid credentials"),
			want: "Invalid credentials",
		},
		{
			name: "wrapped AppError still found",
			err:  fmt.Errorf("login flow: %w", Upstream(ErrUnavailable, "Invalid credentials")),
			want: "Invalid credentials",
		},
		{
			name: "plain error has no user message",
			err:  errors.New("connection refused"),
			want: "",
		},
		{
			name: "empty upstream message stays empty",
			err:  Upstream(ErrUnavailable, ""),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	// The Field lets callers tell WHICH input was invalid.
	err := ValidationFailed("email", "Invalid email format")

	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
	if err.Error() != "Invalid email format" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Invalid email format")
	}
}
