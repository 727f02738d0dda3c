package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalNumber(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   float64
		ok     bool
	}{
		{"marker with number", "2+2 = 4\n#### 4", 4, true},
		{"marker only answer", "#### 72", 72, true},
		{"marker with commas", "#### 1,200", 1200, true},
		{"trailing unit", "39 chocolates", 39, true},
		{"plain integer", "42", 42, true},
		{"decimal", "The answer is 3.5", 3.5, true},
		{"negative", "-17", -17, true},
		{"last of several", "10 apples and 4 oranges", 4, true},
		{"trailing period", "The total is 25.", 25, true},
		{"no digits", "no answer given", 0, false},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"marker with no number after", "work shown #### none", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FinalNumber(tt.answer)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
