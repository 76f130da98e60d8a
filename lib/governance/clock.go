package governance

import "time"

// Clock supplies the height/time every operation compares deadlines
// against. Expiry is a declarative deadline, not a background timer, so
// the clock is read once per operation.
type Clock interface {
	Height() uint64
	Now() time.Time
}

// WallClock is the deployment clock for time-based voting periods; its
// height is always zero, so height-based deadlines never trip under it.
type WallClock struct{}

func (WallClock) Height() uint64 {
	return 0
}

func (WallClock) Now() time.Time {
	return time.Now()
}
