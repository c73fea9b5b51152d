package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBlogNotFound     = errors.New("blog not found")
	ErrDonationNotFound = errors.New("donation not found")
	ErrListingNotFound  = errors.New("plant listing not found")
	ErrSwapNotFound     = errors.New("swap not found")

	// ErrNotOwner is returned when a mutating caller does not match
	// the entity's recorded owner.
	ErrNotOwner = errors.New("not authorized to modify this resource")

	ErrEmailTaken         = errors.New("user already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrDatabase           = errors.New("database error")
)

// ValidationError reports required fields missing from a request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please provide %s", strings.Join(e.Fields, ", "))
}

// requireFields returns a ValidationError naming every field whose
// value is empty, or nil when all are present. Fields come in
// name/value pairs.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
