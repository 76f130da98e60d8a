package governance

import (
	"time"

	"conclave.network/conclave/lib/voting"
)

const DefaultMaxVotingPeriod = time.Hour

type Config struct {
	MaxVotingPeriod voting.Duration

	// AllowEmptyActions permits "signaling" proposals whose batch is
	// empty and whose execution has no downstream effect.
	AllowEmptyActions bool
}

func NewConfig() Config {
	return Config{
		MaxVotingPeriod: voting.NewTimeDuration(uint64(DefaultMaxVotingPeriod / time.Second)),
	}
}
