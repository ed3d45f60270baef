package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivilToUTC(t *testing.T) {
	t.Run("São Paulo standard offset", func(t *testing.T) {
		// 1990-03-15 is outside the Brazilian DST window: UTC-3.
		got, err := CivilToUTC(1990, time.March, 15, 14, 30, "America/Sao_Paulo")

		require.NoError(t, err)
		assert.Equal(t, time.Date(1990, time.March, 15, 17, 30, 0, 0, time.UTC), got)
	})

	t.Run("applies historical DST offset", func(t *testing.T) {
		// 1990-01-15 falls inside Brazilian summer time: UTC-2, not the
		// present-day UTC-3.
		got, err := CivilToUTC(1990, time.January, 15, 14, 30, "America/Sao_Paulo")

		require.NoError(t, err)
		assert.Equal(t, time.Date(1990, time.January, 15, 16, 30, 0, 0, time.UTC), got)
	})

	t.Run("UTC zone passthrough", func(t *testing.T) {
		got, err := CivilToUTC(2024, time.June, 1, 0, 0, "UTC")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := CivilToUTC(2024, time.June, 1, 12, 0, "Mars/Olympus_Mons")

		assert.ErrorIs(t, err, ErrInvalidTimezone)
	})

	t.Run("impossible calendar date", func(t *testing.T) {
		_, err := CivilToUTC(2023, time.April, 31, 10, 0, "UTC")

		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("Feb 29 outside leap year", func(t *testing.T) {
		_, err := CivilToUTC(2023, time.February, 29, 10, 0, "UTC")

		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("Feb 29 in leap year", func(t *testing.T) {
		got, err := CivilToUTC(2024, time.February, 29, 10, 0, "UTC")

		require.NoError(t, err)
		assert.Equal(t, 29, got.Day())
	})

	t.Run("time out of range", func(t *testing.T) {
		_, err := CivilToUTC(2024, time.June, 1, 24, 0, "UTC")
		assert.ErrorIs(t, err, ErrInvalidDateTime)

		_, err = CivilToUTC(2024, time.June, 1, 12, 60, "UTC")
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("nonexistent spring-forward time", func(t *testing.T) {
		// US Eastern sprang forward 02:00→03:00 on 2021-03-14; 02:30
		// never happened on any wall clock.
		_, err := CivilToUTC(2021, time.March, 14, 2, 30, "America/New_York")

		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("ambiguous fall-back time resolves to first occurrence", func(t *testing.T) {
		// 01:30 on 2021-11-07 occurred twice in US Eastern; the first
		// occurrence is still EDT (UTC-4).
		got, err := CivilToUTC(2021, time.November, 7, 1, 30, "America/New_York")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2021, time.November, 7, 5, 30, 0, 0, time.UTC), got)
	})
}
