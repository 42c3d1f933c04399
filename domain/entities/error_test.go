package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDetail_Error(t *testing.T) {
	tests := []struct {
		name   string
		detail *ErrorDetail
		want   string
	}{
		{name: "nil", detail: nil, want: ""},
		{name: "internal type is not prefixed", detail: NewErrorDetail("internal", "boom"), want: "boom"},
		{name: "typed with code", detail: NewErrorDetail("duplicate", "already there").WithCode("type:int"), want: "duplicate: already there [type:int]"},
		{
			name:   "wrapped",
			detail: &ErrorDetail{Type: "enumeration", Message: "outer", Wrapped: NewErrorDetail("internal", "inner")},
			want:   "enumeration: outer: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.Error())
		})
	}
}

func TestErrorDetail_WithDetails(t *testing.T) {
	d := NewErrorDetail("index", "out of range").WithDetails(map[string]any{"index": 3})
	assert.Equal(t, 3, d.Details["index"])
}
