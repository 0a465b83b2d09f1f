// Package timezone converts between UTC-stored instants and a named IANA
// zone. Every function takes the zone explicitly; nothing here reads the
// process zone except DetectViewerZone, which exists only to default the
// zone field when authoring a new event.
package timezone

import (
	"fmt"
	"os"
	"time"
)

// FormInputLayout matches the value format of an HTML datetime-local input.
const FormInputLayout = "2006-01-02T15:04"

// DisplayLayout is the default human-readable rendering.
const DisplayLayout = "Mon, Jan 2, 2006 3:04 PM"

// FormatInZone renders the instant as wall-clock time in the given zone.
// Returns "" when the instant is zero or the zone is unknown; display
// callers treat that as "nothing to show" rather than an error.
func FormatInZone(t time.Time, ianaZone, layout string) string {
	if t.IsZero() {
		return ""
	}
	loc, err := time.LoadLocation(ianaZone)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(layout)
}

// Abbreviation returns the short zone name (e.g. "PST") for the instant in
// the given zone. Derived from the instant+zone pair, never from the
// viewer's environment, so DST boundaries resolve correctly.
func Abbreviation(t time.Time, ianaZone string) string {
	if t.IsZero() {
		return ""
	}
	loc, err := time.LoadLocation(ianaZone)
	if err != nil {
		return ""
	}
	abbr, _ := t.In(loc).Zone()
	return abbr
}

// ToFormInput renders the instant as a zone-local YYYY-MM-DDTHH:mm string
// for a datetime edit control. Same soft-fail policy as FormatInZone.
func ToFormInput(t time.Time, ianaZone string) string {
	return FormatInZone(t, ianaZone, FormInputLayout)
}

// ParseFormInputAsUTC interprets a zone-local wall-clock string as being in
// ianaZone and returns the corresponding UTC instant. The round trip
// ToFormInput -> ParseFormInputAsUTC reproduces the original instant to the
// minute. The zone parameter is threaded through the conversion; parsing
// never falls back to the ambient zone.
func ParseFormInputAsUTC(localString, ianaZone string) (time.Time, error) {
	if localString == "" {
		return time.Time{}, fmt.Errorf("empty datetime string")
	}
	loc, err := time.LoadLocation(ianaZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown timezone %q: %w", ianaZone, err)
	}
	t, err := time.ParseInLocation(FormInputLayout, localString, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", localString, err)
	}
	return t.UTC(), nil
}

// Valid reports whether the name resolves to a known IANA zone.
func Valid(ianaZone string) bool {
	if ianaZone == "" {
		return false
	}
	_, err := time.LoadLocation(ianaZone)
	return err == nil
}

// DetectViewerZone returns the IANA name of the process-local zone. Used
// only as the default when authoring a new event, never to reinterpret a
// stored time.
func DetectViewerZone() string {
	if tz := os.Getenv("TZ"); tz != "" && Valid(tz) {
		return tz
	}
	name := time.Now().Location().String()
	if name == "" || name == "Local" {
		return "UTC"
	}
	return name
}
