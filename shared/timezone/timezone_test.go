package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	defer timezone.Init("UTC")

	timezone.Init("Asia/Jakarta")
	assert.Equal(t, "Asia/Jakarta", timezone.Location().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())

	timezone.Init("Not/AZone")
	assert.Equal(t, time.UTC, timezone.Location())
}

func TestFormat(t *testing.T) {
	defer timezone.Init("UTC")

	timezone.Init("Asia/Jakarta")

	stamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 19:00", timezone.Format(stamp, "2006-01-02 15:04"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  time.Time
		expectErr bool
	}{
		{name: "calendar day", value: "2025-01-03", expected: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2025-01-03T10:00:00Z", expected: time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)},
		{name: "with offset", value: "2025-01-03T10:00:00+07:00", expected: time.Date(2025, 1, 3, 3, 0, 0, 0, time.UTC)},
		{name: "without offset", value: "2025-01-03T10:30", expected: time.Date(2025, 1, 3, 10, 30, 0, 0, time.UTC)},
		{name: "garbage", value: "next tuesday", expectErr: true},
		{name: "impossible day", value: "2025-02-30", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)

			if tt.expectErr {
				require.ErrorIs(t, err, timezone.ErrInvalidDate)

				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}
