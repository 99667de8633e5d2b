package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfreitas/contas/internal/billing"
)

func TestParseInstallment(t *testing.T) {
	tests := []struct {
		marker      string
		wantCurrent int
		wantTotal   int
		wantOK      bool
	}{
		{"2/6", 2, 6, true},
		{"1/1", 1, 1, true},
		{"6/6", 6, 6, true},
		{"12/24", 12, 24, true},

		{"", 0, 0, false},
		{"abc", 0, 0, false},
		{"7/6", 0, 0, false},
		{"0/6", 0, 0, false},
		{"0/0", 0, 0, false},
		{"2/", 0, 0, false},
		{"/6", 0, 0, false},
		{"2/6/12", 0, 0, false},
		{"-1/6", 0, 0, false},
		{"2,6", 0, 0, false},
		{" 2/6", 0, 0, false},
		{"2/6 ", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			current, total, ok := billing.ParseInstallment(tt.marker)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}
