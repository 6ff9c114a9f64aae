package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplayDate(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"2024-03-05", "05.03"},
		{"2024-12-31", "31.12"},
		{"2024-03-05 14:30:00", "05.03"},
		{"2024-03-05T14:30:00", "05.03"},
		{"2024-03-05T14:30", "05.03"},
		{"2024-03-05T14:30:00Z", "05.03"},
		{"2024-03-05T14:30:00.250Z", "05.03"},
		{"2024-03-05T23:30:00-02:00", "06.03"},
		{"", InvalidDate},
		{"yesterday", InvalidDate},
		{"2024-13-01", InvalidDate},
		{"7", "01.01"},
		{"1709596800000", "05.03"},
		{"-86400000", "31.12"},
		{"1e300", InvalidDate},
		{"NaN", InvalidDate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDisplayDate(tt.token, time.UTC), "token %q", tt.token)
	}
}

func TestFormatDisplayDate_Location(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	assert.Equal(t, "06.03", FormatDisplayDate("2024-03-05T22:00:00Z", msk))
	// date-only tokens stay on their calendar day
	assert.Equal(t, "05.03", FormatDisplayDate("2024-03-05", msk))
	assert.Equal(t, "05.03", FormatDisplayDate("2024-03-05", nil))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-03-05", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("05/03/2024", time.UTC)
	assert.False(t, ok)
}
