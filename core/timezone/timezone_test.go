package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInZone(t *testing.T) {
	// 2025-01-14T18:00:00Z is 10:00 AM PST
	instant := time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC)

	got := FormatInZone(instant, "America/Los_Angeles", DisplayLayout)
	assert.Contains(t, got, "10:00 AM")

	assert.Equal(t, "PST", Abbreviation(instant, "America/Los_Angeles"))
}

func TestFormatInZoneSoftFail(t *testing.T) {
	instant := time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, "", FormatInZone(time.Time{}, "America/Los_Angeles", DisplayLayout))
	assert.Equal(t, "", FormatInZone(instant, "Not/AZone", DisplayLayout))
	assert.Equal(t, "", Abbreviation(time.Time{}, "America/Los_Angeles"))
	assert.Equal(t, "", ToFormInput(instant, "Not/AZone"))
}

func TestToFormInput(t *testing.T) {
	instant := time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-14T10:00", ToFormInput(instant, "America/Los_Angeles"))
}

func TestParseFormInputAsUTC(t *testing.T) {
	got, err := ParseFormInputAsUTC("2025-01-14T10:00", "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC), got)

	_, err = ParseFormInputAsUTC("", "America/Los_Angeles")
	assert.Error(t, err)

	_, err = ParseFormInputAsUTC("2025-01-14T10:00", "Not/AZone")
	assert.Error(t, err)

	_, err = ParseFormInputAsUTC("not-a-date", "America/Los_Angeles")
	assert.Error(t, err)
}

// The form-input round trip must reproduce the original instant to the
// minute, across zones and DST boundaries.
func TestRoundTrip(t *testing.T) {
	zones := []string{
		"UTC",
		"America/Los_Angeles",
		"America/New_York",
		"Europe/Berlin",
		"Asia/Ho_Chi_Minh",
		"Australia/Sydney",
		"Pacific/Chatham",
	}
	instants := []time.Time{
		time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 21, 3, 30, 0, 0, time.UTC),
		// Around a US DST transition
		time.Date(2025, 3, 9, 9, 59, 0, 0, time.UTC),
		time.Date(2025, 11, 2, 8, 30, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 23, 59, 0, 0, time.UTC),
	}

	for _, zone := range zones {
		for _, instant := range instants {
			formInput := ToFormInput(instant, zone)
			require.NotEmpty(t, formInput, "zone %s instant %s", zone, instant)

			got, err := ParseFormInputAsUTC(formInput, zone)
			require.NoError(t, err, "zone %s instant %s", zone, instant)
			assert.True(t, got.Equal(instant.Truncate(time.Minute)),
				"zone %s: %s -> %s -> %s", zone, instant, formInput, got)
		}
	}
}

// Parsing must interpret the string in the supplied zone, not in the
// process-local zone.
func TestParseIgnoresAmbientZone(t *testing.T) {
	la, err := ParseFormInputAsUTC("2025-01-14T10:00", "America/Los_Angeles")
	require.NoError(t, err)
	ny, err := ParseFormInputAsUTC("2025-01-14T10:00", "America/New_York")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Hour, la.Sub(ny))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("America/Los_Angeles"))
	assert.True(t, Valid("UTC"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Not/AZone"))
}

func TestDetectViewerZone(t *testing.T) {
	zone := DetectViewerZone()
	assert.True(t, Valid(zone), "detected zone %q must resolve", zone)
}
