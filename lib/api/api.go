package api

import (
	"fmt"

	"github.com/gorilla/mux"

	"conclave.network/conclave/lib/governance"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetProposalsHandlerPattern         = "/proposals"
	GetProposalHandlerPattern          = "/proposals/{id}"
	GetProposalThresholdHandlerPattern = "/proposals/{id}/threshold"
	GetProposalVotesHandlerPattern     = "/proposals/{id}/votes"
	GetProposalVoteHandlerPattern      = "/proposals/{id}/votes/{address}"
	GetVotersHandlerPattern            = "/voters"
	PostProposalPattern                = "/proposals"
	PostVotePattern                    = "/proposals/{id}/votes"
	PostExecutePattern                 = "/proposals/{id}/execute"
	PostClosePattern                   = "/proposals/{id}/close"
)

type NetworkHandlerAPI struct {
	engine    *governance.Engine
	urlPrefix string
	version   string
}

func NewNetworkHandlerAPI(engine *governance.Engine, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		engine:    engine,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

func (api *NetworkHandlerAPI) AddAPIHandlers(router *mux.Router) {
	router.HandleFunc(api.HandlerURLPattern(GetProposalsHandlerPattern), api.GetProposalsHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostProposalPattern), api.PostProposalHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetProposalHandlerPattern), api.GetProposalHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetProposalThresholdHandlerPattern), api.GetProposalThresholdHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetProposalVotesHandlerPattern), api.GetProposalVotesHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostVotePattern), api.PostVoteHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetProposalVoteHandlerPattern), api.GetProposalVoteHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostExecutePattern), api.PostExecuteHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostClosePattern), api.PostCloseHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetVotersHandlerPattern), api.GetVotersHandler).Methods("GET")
}
