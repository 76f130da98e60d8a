package errors

var (
	StorageRecordDoesNotExist  = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(101, "record already exists in storage")
	StorageCoreError           = NewError(102, "storage error")

	EmptyRegistry     = NewError(110, "voter registry is empty")
	DuplicateVoter    = NewError(111, "duplicated voter address found")
	ZeroWeight        = NewError(112, "voter weight must not be zero")
	InvalidThreshold  = NewError(113, "threshold is not satisfiable")
	InvalidExpiration = NewError(114, "invalid expiration")

	Unauthorized       = NewError(120, "sender is not a registered voter")
	ProposalNotFound   = NewError(121, "proposal not found")
	BallotNotFound     = NewError(122, "ballot not found")
	AlreadyVoted       = NewError(123, "sender already voted on this proposal")
	WrongStatus        = NewError(124, "operation not allowed in current proposal status")
	ProposalExpired    = NewError(125, "proposal voting period has expired")
	ProposalNotExpired = NewError(126, "proposal voting period has not expired")
	EmptyBatch         = NewError(127, "proposal action batch is empty")

	ExternalFailure = NewError(130, "dispatched action batch was rejected")

	BadRequestParameter     = NewError(140, "found invalid request parameter")
	InvalidVoteChoice       = NewError(141, "invalid vote choice")
	PageQueryLimitMaxExceed = NewError(142, "limit exceeds the maximum allowed page size")
)
