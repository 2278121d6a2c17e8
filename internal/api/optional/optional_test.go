package optional

import (
	"encoding/json"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		want    *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"v":null}`, true, nil},
		{"blank", `{"v":"  "}`, true, nil},
		{"value", `{"v":"hello"}`, true, ptr("hello")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in struct {
				V String `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatal(err)
			}
			if in.V.Set != tt.wantSet {
				t.Errorf("Set: got %v, want %v", in.V.Set, tt.wantSet)
			}
			got := in.V.Text()
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("Text: got %v, want %v", got, tt.want)
			}
		})
	}

	var in struct {
		V String `json:"v"`
	}
	if err := json.Unmarshal([]byte(`{"v":3}`), &in); err == nil {
		t.Error("a number is not a string")
	}
}

func ptr(s string) *string { return &s }
