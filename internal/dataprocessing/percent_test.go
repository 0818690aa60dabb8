package dataprocessing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePercent(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"comma decimal with sign", "87,5%", 87.5, true},
		{"integer", "100", 100, true},
		{"blank", "  ", 0, false},
		{"empty", "", 0, false},
		{"dot decimal", "12.25", 12.25, true},
		{"percent with space", "5,0 %", 5, true},
		{"non-breaking space", "1\u00a0000,5%", 1000.5, true},
		{"leading text", "ca 42%", 42, true},
		{"trailing dot", "7.", 7, true},
		{"dash", "-", 0, false},
		{"text", "nan", 0, false},
		{"first number wins", "12,5% (3,0%)", 12.5, true},
		{"negative loses sign", "-3", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePercent(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalizePercentIdempotentOnCleanNumbers(t *testing.T) {
	for _, input := range []string{"0", "5", "87.5", "100"} {
		first, ok := NormalizePercent(input)
		assert.True(t, ok)

		second, ok := NormalizePercent(strconv.FormatFloat(first, 'f', -1, 64))
		assert.True(t, ok)
		assert.Equal(t, first, second, input)
	}
}
