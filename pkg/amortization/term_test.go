package amortization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTerm_Normalization(t *testing.T) {
	tests := []struct {
		name           string
		years          int
		months         int
		expectedYears  int
		expectedMonths int
		expectedTotal  int
	}{
		{
			name:           "Years only",
			years:          30,
			months:         0,
			expectedYears:  30,
			expectedMonths: 0,
			expectedTotal:  360,
		},
		{
			name:           "Months only",
			years:          0,
			months:         7,
			expectedYears:  0,
			expectedMonths: 7,
			expectedTotal:  7,
		},
		{
			name:           "Month overflow carries into years",
			years:          2,
			months:         14,
			expectedYears:  3,
			expectedMonths: 2,
			expectedTotal:  38,
		},
		{
			name:           "Exactly twelve months",
			years:          0,
			months:         12,
			expectedYears:  1,
			expectedMonths: 0,
			expectedTotal:  12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := NewTerm(tt.years, tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedYears, term.Years())
			assert.Equal(t, tt.expectedMonths, term.Months())
			assert.Equal(t, tt.expectedTotal, term.Periods())
		})
	}
}

func TestNewTerm_Invalid(t *testing.T) {
	t.Run("negative years", func(t *testing.T) {
		_, err := NewTerm(-1, 6)
		require.ErrorIs(t, err, ErrInvalidTerm)
	})

	t.Run("negative months", func(t *testing.T) {
		_, err := NewTerm(1, -6)
		require.ErrorIs(t, err, ErrInvalidTerm)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := NewTerm(0, 0)
		require.ErrorIs(t, err, ErrInvalidTerm)
	})
}

func TestTerm_String(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		months   int
		expected string
	}{
		{
			name:     "Whole years",
			years:    30,
			months:   0,
			expected: "30 years",
		},
		{
			name:     "Single year",
			years:    1,
			months:   0,
			expected: "1 year",
		},
		{
			name:     "Months only",
			years:    0,
			months:   7,
			expected: "7 months",
		},
		{
			name:     "Single month",
			years:    0,
			months:   1,
			expected: "1 month",
		},
		{
			name:     "Years and months",
			years:    1,
			months:   6,
			expected: "1 year and 6 months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := NewTerm(tt.years, tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, term.String())
		})
	}
}
