// Package optional decodes request fields where an absent key, an explicit
// null and a value all mean different things.
package optional

import (
	"encoding/json"
	"strings"
)

// String records whether its key was sent. Value is nil for an explicit null.
type String struct {
	Set   bool
	Value *string
}

func (s *String) UnmarshalJSON(b []byte) error {
	s.Set = true
	if string(b) == "null" {
		s.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s.Value = &v
	return nil
}

// Text returns nil for null or blank input and the value otherwise.
func (s String) Text() *string {
	if s.Value == nil || strings.TrimSpace(*s.Value) == "" {
		return nil
	}
	v := *s.Value
	return &v
}
