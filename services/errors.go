package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound               = errors.New("requested resource not found")
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrMatchNotFound          = errors.New("match not found")
	ErrProfileNotFound        = errors.New("user profile not found")

	// ErrScoreUpdateForbidden is returned before anything else is checked when
	// the caller is not a referee.
	ErrScoreUpdateForbidden = errors.New("permission denied: user is not a referee")
)

// ValidationError carries one message per offending field and maps to a
// structured 400 response.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
