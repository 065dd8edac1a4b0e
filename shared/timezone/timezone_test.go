package timezone_test

import (
	"dashboard/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestFormat(t *testing.T) {
	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	formatted := timezone.Format(instant, time.RFC3339)

	parsed, err := time.Parse(time.RFC3339, formatted)
	require.NoError(t, err)
	assert.True(t, instant.Equal(parsed))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "calendar date",
			value:    "2024-03-10",
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 timestamp",
			value:    "2024-03-10T08:30:00Z",
			expected: time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC),
		},
		{
			name:    "not a date",
			value:   "tomorrow",
			wantErr: true,
		},
		{
			name:    "impossible day",
			value:   "2024-02-30",
			wantErr: true,
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
		})
	}
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2024, 3, 10, 23, 0, 0, 0, time.FixedZone("", -5*3600))

	assert.Equal(t, "2024-03-10", timezone.FormatDate(day))
	assert.Equal(t, "", timezone.FormatDate(time.Time{}))
	assert.Equal(t, "", timezone.FormatDatePtr(nil))
	assert.Equal(t, "2024-03-10", timezone.FormatDatePtr(&day))
}
