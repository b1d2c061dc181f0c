package model

import (
	"strings"
	"testing"
)

func TestValidateStartJobAccepts(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"language": "en"},
		{"userId": "3f2a1b4c-5d6e-4f70-8a9b-0c1d2e3f4a5b", "notes": "tailor for backend roles"},
	}
	for _, m := range cases {
		if err := ValidateStartJob(m); err != nil {
			t.Errorf("ValidateStartJob(%v) = %v, want nil", m, err)
		}
	}
}

func TestValidateStartJobRejects(t *testing.T) {
	cases := []struct {
		name string
		meta map[string]interface{}
	}{
		{"unknown key", map[string]interface{}{"unexpected": "value"}},
		{"bad user id", map[string]interface{}{"userId": "not-a-uuid"}},
		{"language too long", map[string]interface{}{"language": strings.Repeat("x", 33)}},
		{"notes too long", map[string]interface{}{"notes": strings.Repeat("x", 501)}},
		{"wrong type", map[string]interface{}{"notes": 42}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateStartJob(tc.meta); err == nil {
				t.Errorf("ValidateStartJob(%v) = nil, want error", tc.meta)
			}
		})
	}
}
