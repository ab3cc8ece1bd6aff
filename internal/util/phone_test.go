package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already e164", "+15551234567", "+15551234567"},
		{"ten digit gains country code", "5551234567", "+15551234567"},
		{"formatted", "(555) 123-4567", "+15551234567"},
		{"with country code no plus", "15551234567", "+15551234567"},
		{"empty", "", ""},
		{"letters only", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNumber(tt.raw))
		})
	}
}
