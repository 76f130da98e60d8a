package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"conclave.network/conclave/lib/api/resource"
	"conclave.network/conclave/lib/common/observer"
	"conclave.network/conclave/lib/contract/payload"
	"conclave.network/conclave/lib/errors"
	"conclave.network/conclave/lib/governance"
	"conclave.network/conclave/lib/httputils"
	"conclave.network/conclave/lib/voting"
)

func parseProposalID(r *http.Request) (uint64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("id", vars["id"])
	}
	return id, nil
}

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	proposals, err := api.engine.Proposals(p.ListOptions())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var firstCursor []byte
	var cursor []byte
	var rs []resource.Resource
	for i := range proposals {
		proposals[i].Status = api.engine.EffectiveStatus(proposals[i])
		cursor = []byte(governance.GetProposalKey(proposals[i].ID))
		if len(firstCursor) == 0 {
			firstCursor = cursor
		}
		rs = append(rs, resource.NewProposal(&proposals[i]))
	}

	list := p.ResourceList(rs, firstCursor, cursor)
	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseProposalID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	proposal, err := api.engine.Proposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	proposal.Status = api.engine.EffectiveStatus(proposal)

	if httputils.IsEventStream(r) {
		event := observer.NewCondition(observer.Proposal, observer.Identifier, strconv.FormatUint(id, 10)).String()
		es := NewDefaultEventStream(w, r)
		es.Render(&proposal)
		es.Run(observer.ProposalObserver, event)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(&proposal))
}

func (api NetworkHandlerAPI) GetProposalThresholdHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseProposalID(r)
	if err != nil {
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

type ProposalRequest struct {
	Proposer    string             `json:"proposer"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Actions     []payload.Action   `json:"actions"`
	Latest      *voting.Expiration `json:"latest,omitempty"`
}

func (api NetworkHandlerAPI) PostProposalHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var req ProposalRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	id, err := api.engine.Propose(req.Proposer, req.Title, req.Description, req.Actions, req.Latest)
	if err != nil {
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
