package ledger

import "time"

// SystemClock reads the wall clock.
type SystemClock struct{}

var _ Clock = SystemClock{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// FixedClock always reports the same time. Tests use it to pin expiry
// boundaries.
type FixedClock struct {
	Time uint64
}

var _ Clock = FixedClock{}

func (c FixedClock) Now() uint64 {
	return c.Time
}
