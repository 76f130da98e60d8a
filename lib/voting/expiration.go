package voting

import (
	"time"

	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/errors"
)

// Duration is a voting period length, either a block-height delta or a
// wall-clock delta in seconds. Exactly one field should be set.
type Duration struct {
	Height uint64 `json:"height,omitempty"`
	Time   uint64 `json:"time,omitempty"`
}

func NewHeightDuration(delta uint64) Duration {
	return Duration{Height: delta}
}

func NewTimeDuration(seconds uint64) Duration {
	return Duration{Time: seconds}
}

// After anchors the duration to the given point, producing the deadline.
func (d Duration) After(height uint64, now time.Time) Expiration {
	if d.Height > 0 {
		return Expiration{AtHeight: height + d.Height}
	}
	if d.Time > 0 {
		return Expiration{AtTime: common.FormatISO8601(now.Add(time.Duration(d.Time) * time.Second))}
	}

	return Expiration{}
}

// Expiration is a proposal deadline, frozen at creation. The zero value
// never expires. It is compared against the height/clock the caller's
// environment supplies at each operation; there is no background timer.
type Expiration struct {
	AtHeight uint64 `json:"at_height,omitempty"`
	AtTime   string `json:"at_time,omitempty"`
}

func (e Expiration) IsNever() bool {
	return e.AtHeight == 0 && len(e.AtTime) == 0
}

func (e Expiration) Expired(height uint64, now time.Time) bool {
	if e.AtHeight > 0 {
		return height >= e.AtHeight
	}
	if len(e.AtTime) > 0 {
		at, err := common.ParseISO8601(e.AtTime)
		if err != nil {
			return false
		}
		return !now.Before(at)
	}

	return false
}

// LaterThan reports whether e is a later deadline than o. Deadlines of
// different kinds are not comparable.
func (e Expiration) LaterThan(o Expiration) (bool, error) {
	if e.IsNever() {
		return !o.IsNever(), nil
	}
	if o.IsNever() {
		return false, nil
	}

	if e.AtHeight > 0 && o.AtHeight > 0 {
		return e.AtHeight > o.AtHeight, nil
	}

	if len(e.AtTime) > 0 && len(o.AtTime) > 0 {
		et, err := common.ParseISO8601(e.AtTime)
		if err != nil {
			return false, errors.InvalidExpiration.Clone().SetData("at_time", e.AtTime)
		}
		ot, err := common.ParseISO8601(o.AtTime)
		if err != nil {
			return false, errors.InvalidExpiration.Clone().SetData("at_time", o.AtTime)
		}
		return et.After(ot), nil
	}

	return false, errors.InvalidExpiration.Clone().SetData("cause", "height and time deadlines are not comparable")
}
