package timeconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTCHandlesDaylightSaving(t *testing.T) {
	// Julho em Londres é BST (UTC+1): 19:00 local vira 18:00 UTC
	got, err := ToUTC("2023-07-10 19:00:00", DefaultLayout, "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 7, 10, 18, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2023-07-10 18:00:00", Canonical(got))

	// Janeiro é GMT (UTC+0): sem deslocamento
	got, err = ToUTC("2023-01-10 19:00:00", DefaultLayout, "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-10 19:00:00", Canonical(got))
}

func TestToUTCOtherZones(t *testing.T) {
	got, err := ToUTC("2023-07-04 19:00:00", DefaultLayout, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "2023-07-05 02:00:00", Canonical(got)) // PDT = UTC-7

	got, err = ToUTC("2023-07-04 19:00:00", DefaultLayout, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2023-07-04 19:00:00", Canonical(got))
}

func TestToUTCInvalidTimestamp(t *testing.T) {
	_, err := ToUTC("10/07/2023 19h", DefaultLayout, "Europe/London")
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = ToUTC("", DefaultLayout, "Europe/London")
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestToUTCUnknownTimeZone(t *testing.T) {
	_, err := ToUTC("2023-07-10 19:00:00", DefaultLayout, "Atlantis/Capital")
	require.ErrorIs(t, err, ErrUnknownTimeZone)
}
