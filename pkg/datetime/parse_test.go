package datetime

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		dateStr  string
		expected string
		wantErr  bool
	}{
		{
			name:     "Valid date",
			dateStr:  "2025-01-15",
			expected: "2025-01-15",
			wantErr:  false,
		},
		{
			name:     "Last day of year",
			dateStr:  "2030-12-31",
			expected: "2030-12-31",
			wantErr:  false,
		},
		{
			name:    "Month-only date rejected",
			dateStr: "2025-01",
			wantErr: true,
		},
		{
			name:    "Garbage rejected",
			dateStr: "not-a-date",
			wantErr: true,
		},
		{
			name:    "Out of range day rejected",
			dateStr: "2025-02-30",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.dateStr)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("ParseDate() error = %v", err)
				return
			}
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("ParseDate() = %s, expected %s", result.Format(DateLayout), tt.expected)
			}
			if result.Location() != time.UTC {
				t.Errorf("ParseDate() location = %v, expected UTC", result.Location())
			}
			if result.Hour() != 0 || result.Minute() != 0 || result.Second() != 0 {
				t.Errorf("ParseDate() = %v, expected midnight", result)
			}
		})
	}
}

func TestMustParseDatePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseDate to panic with invalid date")
		}
	}()

	MustParseDate("invalid-date")
}

func TestNormalize(t *testing.T) {
	loc := time.FixedZone("TEST", 3*60*60)
	noisy := time.Date(2025, time.March, 14, 15, 9, 26, 535, loc)
	result := Normalize(noisy)
	if !result.Equal(Date(2025, time.March, 14)) {
		t.Errorf("Normalize() = %v, expected 2025-03-14 UTC midnight", result)
	}
}

func TestNextMonth(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{
			name:     "Mid-month step",
			date:     "2025-01-15",
			expected: "2025-02-15",
		},
		{
			name:     "Clamp to short February",
			date:     "2025-01-31",
			expected: "2025-02-28",
		},
		{
			name:     "Clamp to leap February",
			date:     "2024-01-31",
			expected: "2024-02-29",
		},
		{
			name:     "Clamp to thirty-day month",
			date:     "2025-03-31",
			expected: "2025-04-30",
		},
		{
			name:     "Year rollover",
			date:     "2025-12-10",
			expected: "2026-01-10",
		},
		{
			name:     "First of month step",
			date:     "2025-06-01",
			expected: "2025-07-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NextMonth(MustParseDate(tt.date))
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("NextMonth(%s) = %s, expected %s", tt.date, result.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestNextMonthClampCascades(t *testing.T) {
	// Once clamped, the day of month stays clamped on later steps rather
	// than springing back to the original day.
	dt := MustParseDate("2025-01-31")
	steps := []string{"2025-02-28", "2025-03-28", "2025-04-28"}
	for _, expected := range steps {
		dt = NextMonth(dt)
		if dt.Format(DateLayout) != expected {
			t.Fatalf("NextMonth cascade = %s, expected %s", dt.Format(DateLayout), expected)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected int
	}{
		{
			name:     "Full January",
			first:    "2025-01-01",
			second:   "2025-02-01",
			expected: 31,
		},
		{
			name:     "Full non-leap February",
			first:    "2025-02-01",
			second:   "2025-03-01",
			expected: 28,
		},
		{
			name:     "Full leap February",
			first:    "2024-02-01",
			second:   "2024-03-01",
			expected: 29,
		},
		{
			name:     "Same day",
			first:    "2025-06-15",
			second:   "2025-06-15",
			expected: 0,
		},
		{
			name:     "Reverse order is negative",
			first:    "2025-06-15",
			second:   "2025-06-10",
			expected: -5,
		},
		{
			name:     "Across a year",
			first:    "2024-01-01",
			second:   "2025-01-01",
			expected: 366,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DaysBetween(MustParseDate(tt.first), MustParseDate(tt.second))
			if result != tt.expected {
				t.Errorf("DaysBetween(%s, %s) = %d, expected %d", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		expected int
	}{
		{
			name:     "January",
			year:     2025,
			month:    time.January,
			expected: 31,
		},
		{
			name:     "Non-leap February",
			year:     2025,
			month:    time.February,
			expected: 28,
		},
		{
			name:     "Leap February",
			year:     2024,
			month:    time.February,
			expected: 29,
		},
		{
			name:     "April",
			year:     2025,
			month:    time.April,
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DaysInMonth(tt.year, tt.month)
			if result != tt.expected {
				t.Errorf("DaysInMonth(%d, %v) = %d, expected %d", tt.year, tt.month, result, tt.expected)
			}
			end := EndOfMonth(tt.year, tt.month)
			if end.Day() != tt.expected {
				t.Errorf("EndOfMonth(%d, %v) = %v, expected day %d", tt.year, tt.month, end, tt.expected)
			}
		})
	}
}
