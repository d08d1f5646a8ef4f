package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsedSameDay(t *testing.T) {
	created := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 3, 11, 11, 30, 0, 0, time.UTC)

	assert.Equal(t, "02h 30m", formatElapsed(created, completed))
}

func TestFormatElapsedZeroPadding(t *testing.T) {
	created := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 3, 11, 9, 5, 0, 0, time.UTC)

	assert.Equal(t, "00h 05m", formatElapsed(created, completed))
}

// A goal completed the next morning used to produce a negative clock-face
// difference; elapsed time over a day boundary must stay positive.
func TestFormatElapsedDayRollover(t *testing.T) {
	created := time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 3, 12, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "03h 30m", formatElapsed(created, completed))
}

func TestFormatElapsedClampsNegative(t *testing.T) {
	created := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	completed := created.Add(-time.Hour)

	assert.Equal(t, "00h 00m", formatElapsed(created, completed))
}

func TestCeilPercent(t *testing.T) {
	assert.Equal(t, 50, ceilPercent(2, 4))
	assert.Equal(t, 34, ceilPercent(1, 3))
	assert.Equal(t, 100, ceilPercent(4, 4))
	assert.Equal(t, 0, ceilPercent(0, 4))
}

func TestCeilPercentZeroDenominator(t *testing.T) {
	assert.Equal(t, 0, ceilPercent(3, 0))
}

func TestRoundPercent(t *testing.T) {
	// 2 of 3 correct rounds to 67, not truncated to 66.
	assert.Equal(t, 67, roundPercent(2, 3))
	assert.Equal(t, 50, roundPercent(1.5, maxEvaluation))
	assert.Equal(t, 83, roundPercent(2.5, maxEvaluation))
}

func TestRoundPercentZeroDenominator(t *testing.T) {
	assert.Equal(t, 0, roundPercent(1, 0))
}
