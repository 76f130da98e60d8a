package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"conclave.network/conclave/lib/api/resource"
	"conclave.network/conclave/lib/common/observer"
	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/governance"
	"conclave.network/conclave/lib/httputils"
	"conclave.network/conclave/lib/voting"
)

func (api NetworkHandlerAPI) GetProposalVotesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseProposalID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		event := observer.NewCondition(observer.Ballot, observer.Identifier, strconv.FormatUint(id, 10)).String()
		es := NewDefaultEventStream(w, r)
		es.Render(nil)
		es.Run(observer.BallotObserver, event)
		return
	}

	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	ballots, err := api.engine.Ballots(id, p.ListOptions())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var firstCursor []byte
	var cursor []byte
	var rs []resource.Resource
	for i := range ballots {
		cursor = []byte(governance.GetBallotKey(ballots[i].ProposalID, ballots[i].Voter))
		if len(firstCursor) == 0 {
			firstCursor = cursor
		}
		rs = append(rs, resource.NewBallot(&ballots[i]))
	}

	list := p.ResourceList(rs, firstCursor, cursor)
	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetProposalVoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseProposalID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	address := mux.Vars(r)["address"]

	ballot, err := api.engine.Ballot(id, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewBallot(&ballot))
}

type VoteRequest struct {
	Voter  string `json:"voter"`
	Choice string `json:"choice"`
}

func (api NetworkHandlerAPI) PostVoteHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := parseProposalID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var req VoteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	choice, err := voting.ParseChoice(req.Choice)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if err := api.engine.Vote(req.Voter, id, choice); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	state, err := api.engine.Threshold(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewThresholdState(state))
}

type SenderRequest struct {
	Sender string `json:"sender"`
}

func (api NetworkHandlerAPI) PostExecuteHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := parseProposalID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var req SenderRequest
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
			return
		}
	}

	if err := api.engine.Execute(req.Sender, id); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	proposal, err := api.engine.Proposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(&proposal))
}

func (api NetworkHandlerAPI) PostCloseHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := parseProposalID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var req SenderRequest
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
			return
		}
	}

	if err := api.engine.Close(req.Sender, id); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	proposal, err := api.engine.Proposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(&proposal))
}
