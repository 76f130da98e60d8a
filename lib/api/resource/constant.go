package resource

const (
	APIVersionV1 = "/v1"

	URLProposals         = APIVersionV1 + "/proposals"
	URLProposal          = APIVersionV1 + "/proposals/{id}"
	URLProposalThreshold = APIVersionV1 + "/proposals/{id}/threshold"
	URLProposalVotes     = APIVersionV1 + "/proposals/{id}/votes"
	URLProposalVote      = APIVersionV1 + "/proposals/{id}/votes/{address}"
	URLVoters            = APIVersionV1 + "/voters"
)
