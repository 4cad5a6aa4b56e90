package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidPrice(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{"0", true},
		{"1800", true},
		{"1500.50", true},
		{"0.01", true},
		{"99999999.99", true},
		{"-0.01", false},
		{"0.005", false},
		{"12.345", false},
		{"100000000", false},
		{"100000000000000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPrice(decimal.RequireFromString(tt.price)))
		})
	}
}
