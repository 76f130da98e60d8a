package metrics

const (
	Namespace           = "conclave"
	GovernanceSubsystem = "governance"
	APISubsystem        = "api"
)
