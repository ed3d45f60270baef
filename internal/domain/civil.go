package domain

import (
	"fmt"
	"time"
)

// CivilToUTC converts a local calendar date and wall-clock time in the given
// IANA zone to the corresponding UTC instant, using the zone's offset rules
// as they were on that date.
//
// Nonexistent local times (skipped by a spring-forward transition) are
// rejected with ErrInvalidDateTime. Ambiguous times (repeated by a fall-back
// transition) take the interpretation time.Date picks for the zone, which is
// the first occurrence; silent arbitrary choices are confined to that single
// documented case.
func CivilToUTC(year int, month time.Month, day, hour, minute int, tzID string) (time.Time, error) {
	if err := validateCivil(year, month, day, hour, minute); err != nil {
		return time.Time{}, err
	}

	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, tzID)
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	// time.Date normalizes wall-clock times that a DST transition skipped
	// onto a neighboring valid instant. A changed field means the requested
	// local time never existed in this zone.
	if t.Year() != year || t.Month() != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d does not exist in %s",
			ErrInvalidDateTime, year, month, day, hour, minute, tzID)
	}

	return t.UTC(), nil
}

// validateCivil checks field ranges and calendar validity (day 31 in a
// 30-day month, Feb 29 outside leap years).
func validateCivil(year int, month time.Month, day, hour, minute int) error {
	if year < 1 || month < time.January || month > time.December {
		return fmt.Errorf("%w: year/month out of range", ErrInvalidDateTime)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: time %02d:%02d out of range", ErrInvalidDateTime, hour, minute)
	}
	if day < 1 || day > daysIn(year, month) {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDateTime, day, year, month)
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
