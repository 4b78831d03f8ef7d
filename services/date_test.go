package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-06-10")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), parsed)

	// Timestamps are tolerated and truncated to the calendar date
	parsed, err = ParseDate("2024-06-10T15:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("2024-06-10 15:30:00")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("")
	assert.Error(t, err)

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDiffDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 0, DiffDays(day(10), day(10)))
	assert.Equal(t, 1, DiffDays(day(10), day(11)))
	assert.Equal(t, 5, DiffDays(day(10), day(15)))
	assert.Equal(t, -3, DiffDays(day(10), day(7)))
}

func TestDiffDaysAcrossMonths(t *testing.T) {
	from := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DiffDays(from, to))
}

func TestYMD(t *testing.T) {
	assert.Equal(t, "2024-06-10", YMD(time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)))
}

func TestFormatBR(t *testing.T) {
	assert.Equal(t, "10/06/2024", FormatBR("2024-06-10"))
	assert.Equal(t, "—", FormatBR(""))
	// Unparseable input passes through untouched
	assert.Equal(t, "garbage", FormatBR("garbage"))
}
