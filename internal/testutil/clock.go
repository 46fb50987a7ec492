package testutil

import (
	"time"

	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
)

// Epoch is the start time of every test clock.
var Epoch = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) clock.Clock {
	return clock.NewMockClock(t)
}

// NewMockClock creates a mock clock at Epoch that can be controlled in tests.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(Epoch)
}
