package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2025, time.March, 14, 15, 9, 26, 535, time.Local)
	got := BeginningOfDay(in)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local), got)
}

func TestNextDay(t *testing.T) {
	in := time.Date(2025, time.March, 31, 23, 59, 0, 0, time.Local)
	got := NextDay(in)

	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local), got)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, time.March, 14, 23, 0, 0, 0, time.Local)
	end := time.Date(2025, time.March, 16, 1, 0, 0, 0, time.Local)

	assert.Equal(t, 2, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, -2, DaysBetween(end, start))
}
