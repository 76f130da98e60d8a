package governance

import (
	"time"

	"conclave.network/conclave/lib/contract/native"
	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voter"
	"conclave.network/conclave/lib/voting"
)

// TestClock is a manually driven clock so tests control expiry exactly.
type TestClock struct {
	height uint64
	now    time.Time
}

func NewTestClock() *TestClock {
	return &TestClock{height: 1, now: time.Now()}
}

func (c *TestClock) Height() uint64 {
	return c.height
}

func (c *TestClock) Now() time.Time {
	return c.now
}

func (c *TestClock) AdvanceHeight(delta uint64) {
	c.height += delta
}

func (c *TestClock) AdvanceTime(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestMakeVoters(weights ...uint64) []voter.Voter {
	var voters []voter.Voter
	for i, w := range weights {
		voters = append(voters, voter.Voter{
			Address: testVoterAddress(i),
			Weight:  w,
		})
	}
	return voters
}

func testVoterAddress(i int) string {
	return "addr" + string(rune('1'+i))
}

// TestMakeEngine builds an engine over memory storage with a counter
// contract registered in a fresh sandbox.
func TestMakeEngine(threshold voting.Threshold, maxVotingPeriod voting.Duration, weights ...uint64) (*Engine, *native.Sandbox, *TestClock) {
	st := storage.NewTestStorage()

	registry, err := voter.NewRegistry(TestMakeVoters(weights...))
	if err != nil {
		panic(err)
	}

	sandbox := native.NewSandbox()
	sandbox.Register("counter", native.CounterContract("counter"))
	sandbox.Register("token", native.TokenContract("token"))

	clock := NewTestClock()

	config := NewConfig()
	config.MaxVotingPeriod = maxVotingPeriod

	engine, err := NewEngine(st, registry, threshold, config, sandbox, clock)
	if err != nil {
		st.Close()
		panic(err)
	}

	return engine, sandbox, clock
}

func TestIncrementAction() payload.Action {
	return payload.Action{Target: "counter", Method: "increment"}
}
