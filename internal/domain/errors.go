package domain

import "errors"

// Sentinel errors for the chart pipeline. Adapters wrap these with
// backend detail; the HTTP boundary matches with errors.Is and converts
// each to a user-facing message.
var (
	// ErrValidation marks a missing or malformed request field.
	ErrValidation = errors.New("invalid request")

	// ErrLocationNotFound means geocoding produced no match.
	ErrLocationNotFound = errors.New("location not found")

	// ErrTimezoneNotFound means no IANA zone covers the coordinate.
	ErrTimezoneNotFound = errors.New("timezone not found")

	// ErrInvalidTimezone marks an unrecognized IANA zone identifier.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidDateTime marks an impossible calendar date/time, or a
	// local time skipped by a DST transition.
	ErrInvalidDateTime = errors.New("invalid date/time")

	// ErrEphemeris means the astronomical backend failed or returned an
	// incomplete body set.
	ErrEphemeris = errors.New("ephemeris computation failed")
)
