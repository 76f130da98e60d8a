package governance

import (
	"conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/contract"
	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/metrics"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voter"
	"conclave.network/conclave/lib/voting"
)

// Engine is the proposal/voting/execution state machine. Every operation
// runs as one storage transaction: any failure after partial mutation
// discards the transaction, leaving persisted state unchanged. Operations
// are processed one at a time; the registry is immutable and read without
// locking.
type Engine struct {
	st         *storage.LevelDBBackend
	registry   *voter.Registry
	threshold  voting.Threshold
	config     Config
	dispatcher contract.Dispatcher
	clock      Clock
}

func NewEngine(
	st *storage.LevelDBBackend,
	registry *voter.Registry,
	threshold voting.Threshold,
	config Config,
	dispatcher contract.Dispatcher,
	clock Clock,
) (*Engine, error) {
	if err := threshold.Validate(registry.TotalWeight()); err != nil {
		return nil, err
	}

	if err := registry.Save(st); err != nil {
		return nil, err
	}

	e := &Engine{
		st:         st,
		registry:   registry,
		threshold:  threshold,
		config:     config,
		dispatcher: dispatcher,
		clock:      clock,
	}

	log.Info(
		"engine created",
		"total-weight", registry.TotalWeight(),
		"threshold", threshold,
	)

	return e, nil
}

func (e *Engine) Registry() *voter.Registry {
	return e.registry
}

func (e *Engine) Storage() *storage.LevelDBBackend {
	return e.st
}

// Propose creates a proposal with status computed from the proposer's own
// Yes ballot, which is cast atomically with creation; a proposer whose
// weight alone satisfies the threshold yields an immediately passed
// proposal.
func (e *Engine) Propose(proposer, title, description string, actions []payload.Action, latest *voting.Expiration) (id uint64, err error) {
	weight, found := e.registry.WeightOf(proposer)
	if !found {
		err = errors.Unauthorized.Clone().SetData("sender", proposer)
		return
	}

	if len(actions) < 1 && !e.config.AllowEmptyActions {
		err = errors.EmptyBatch
		return
	}

	height, now := e.clock.Height(), e.clock.Now()

	expires := e.config.MaxVotingPeriod.After(height, now)
	if latest != nil {
		var later bool
		if later, err = latest.LaterThan(expires); err != nil {
			return
		}
		if later {
			err = errors.InvalidExpiration.Clone().SetData("cause", "explicit deadline exceeds the maximum voting period")
			return
		}
		expires = *latest
	}

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	if id, err = NextProposalID(ts); err != nil {
		ts.Discard()
		return
	}

	ballot := &Ballot{
		ProposalID: id,
		Voter:      proposer,
		Choice:     voting.YES,
		Weight:     weight,
	}

	tally := voting.Tally{Yes: weight}

	p := &Proposal{
		ID:          id,
		Proposer:    proposer,
		Title:       title,
		Description: description,
		Actions:     actions,
		Threshold:   e.threshold,
		TotalWeight: e.registry.TotalWeight(),
		Expires:     expires,
		Status:      voting.OPEN,
	}

	if status := e.threshold.Evaluate(tally, p.TotalWeight, false); status != voting.OPEN {
		p.Status = status
	}

	if err = p.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = ballot.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	metrics.Governance.AddProposals(1)
	metrics.Governance.AddBallots(1)

	log.Info("proposal created", "id", id, "proposer", proposer, "status", p.Status)

	return
}

// Vote records one ballot and re-evaluates the threshold. Voting on a
// decided proposal fails even before expiry; a passed proposal never
// reopens.
func (e *Engine) Vote(address string, proposalID uint64, choice voting.Choice) (err error) {
	weight, found := e.registry.WeightOf(address)
	if !found {
		return errors.Unauthorized.Clone().SetData("sender", address)
	}

	var p Proposal
	if p, err = GetProposal(e.st, proposalID); err != nil {
		return
	}

	if p.Expires.Expired(e.clock.Height(), e.clock.Now()) {
		e.finalizeExpired(&p)
		return errors.ProposalExpired.Clone().SetData("id", proposalID)
	}

	if p.Status != voting.OPEN {
		return errors.WrongStatus.Clone().SetData("status", p.Status)
	}

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	ballot := &Ballot{
		ProposalID: proposalID,
		Voter:      address,
		Choice:     choice,
		Weight:     weight,
	}
	if err = ballot.Save(ts); err != nil {
		ts.Discard()
		return
	}

	var tally voting.Tally
	if tally, err = TallyBallots(ts, proposalID); err != nil {
		ts.Discard()
		return
	}

	if status := e.threshold.Evaluate(tally, p.TotalWeight, false); status != voting.OPEN {
		p.Status = status
		if err = p.Save(ts); err != nil {
			ts.Discard()
			return
		}
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	metrics.Governance.AddBallots(1)

	log.Info("ballot recorded", "id", proposalID, "voter", address, "choice", choice, "status", p.Status)

	return
}

// Execute dispatches a passed proposal's batch exactly once. The status
// transition to EXECUTED and the dispatch share one outcome: a failed
// dispatch discards the transition, so the proposal stays passed and the
// caller may retry. A passed-but-expired proposal is not executable.
func (e *Engine) Execute(caller string, proposalID uint64) (err error) {
	var p Proposal
	if p, err = GetProposal(e.st, proposalID); err != nil {
		return
	}

	if p.Expires.Expired(e.clock.Height(), e.clock.Now()) {
		switch p.Status {
		case voting.OPEN:
			e.finalizeExpired(&p)
			return errors.ProposalExpired.Clone().SetData("id", proposalID)
		case voting.PASSED:
			return errors.ProposalExpired.Clone().SetData("id", proposalID)
		}
	}

	if p.Status != voting.PASSED {
		return errors.WrongStatus.Clone().SetData("status", p.Status)
	}

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	// retries of the same proposal get distinct dispatch ids in the log
	dispatchID := common.GetUniqueIDFromUUID()

	p.Status = voting.EXECUTED
	if err = p.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = e.dispatcher.Dispatch(p.Actions); err != nil {
		ts.Discard()
		metrics.Governance.AddFailedDispatches(1)
		log.Error("dispatch failed", "id", proposalID, "dispatch", dispatchID, "error", err)
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	metrics.Governance.AddExecuted(1)

	log.Info("proposal executed", "id", proposalID, "dispatch", dispatchID, "caller", caller, "actions", len(p.Actions))

	return
}

// Close force-finalizes an expired open proposal as rejected, so the
// terminal state becomes observable without waiting for another Vote or
// Execute attempt to trip lazy finalization.
func (e *Engine) Close(caller string, proposalID uint64) (err error) {
	var p Proposal
	if p, err = GetProposal(e.st, proposalID); err != nil {
		return
	}

	if p.Status != voting.OPEN {
		return errors.WrongStatus.Clone().SetData("status", p.Status)
	}

	if !p.Expires.Expired(e.clock.Height(), e.clock.Now()) {
		return errors.ProposalNotExpired.Clone().SetData("id", proposalID)
	}

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	p.Status = voting.REJECTED
	if err = p.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	metrics.Governance.AddRejected(1)

	log.Info("proposal closed", "id", proposalID, "caller", caller)

	return
}

// finalizeExpired persists the Open -> Rejected transition for a
// proposal found expired by a touching operation. It commits on its own,
// outside the caller's failing operation.
func (e *Engine) finalizeExpired(p *Proposal) {
	if p.Status != voting.OPEN {
		return
	}

	ts, err := e.st.OpenTransaction()
	if err != nil {
		log.Error("could not finalize expired proposal", "id", p.ID, "error", err)
		return
	}

	p.Status = voting.REJECTED
	if err := p.Save(ts); err != nil {
		ts.Discard()
		log.Error("could not finalize expired proposal", "id", p.ID, "error", err)
		return
	}

	if err := ts.Commit(); err != nil {
		ts.Discard()
		log.Error("could not finalize expired proposal", "id", p.ID, "error", err)
		return
	}

	metrics.Governance.AddRejected(1)

	log.Info("expired proposal finalized", "id", p.ID)
}
