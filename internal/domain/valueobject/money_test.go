package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestHasMoneyScale(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"10", true},
		{"10.5", true},
		{"10.05", true},
		{"10.500", true},
		{"-3.20", true},
		{"0", true},
		{"10.005", false},
		{"0.005", false},
		{"-0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := HasMoneyScale(decimal.RequireFromString(tt.value)); got != tt.want {
				t.Errorf("HasMoneyScale(%s) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
