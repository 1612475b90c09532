package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmailTaken is returned by Register when a user with the requested
// email already exists.
var ErrEmailTaken = errors.New("email already exists")

// ErrInvalidCredentials is returned by Login for both an unknown email
// and a wrong password, so that callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned by UpdateProfile when no user exists under
// the supplied email.
var ErrUserNotFound = errors.New("user not found")

// ErrMissingIdentity is returned by UpdateProfile when the caller did not
// supply the target account's email.
var ErrMissingIdentity = errors.New("email not found in headers")

// ErrGiftNotFound is returned by GetGiftByID for an unknown gift id.
var ErrGiftNotFound = errors.New("gift not found")

// FieldViolation describes a single failed input constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field of a request, not just the
// first one.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		messages = append(messages, fmt.Sprintf("%s: %s", violation.Field, violation.Message))
	}

	return "validation failed: " + strings.Join(messages, "; ")
}
