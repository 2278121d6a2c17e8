package blog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Now is the clock used for timestamps. UTC, truncated to the microsecond
// precision Postgres stores.
var Now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ValidationError reports a client-correctable problem with a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func requireText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, "this field is required")
	}
	if limit > 0 {
		return maxLen(field, value, limit)
	}
	return nil
}

func maxLen(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return Invalid(field, "ensure this field has no more than %d characters", limit)
	}
	return nil
}
