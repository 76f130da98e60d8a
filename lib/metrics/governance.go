package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type GovernanceMetrics struct {
	Proposals        metrics.Counter
	Ballots          metrics.Counter
	Executed         metrics.Counter
	Rejected         metrics.Counter
	FailedDispatches metrics.Counter
}

func (g *GovernanceMetrics) AddProposals(n int) {
	g.Proposals.Add(float64(n))
}
func (g *GovernanceMetrics) AddBallots(n int) {
	g.Ballots.Add(float64(n))
}
func (g *GovernanceMetrics) AddExecuted(n int) {
	g.Executed.Add(float64(n))
}
func (g *GovernanceMetrics) AddRejected(n int) {
	g.Rejected.Add(float64(n))
}
func (g *GovernanceMetrics) AddFailedDispatches(n int) {
	g.FailedDispatches.Add(float64(n))
}

func PromGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		Proposals: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "proposals_total",
			Help:      "Total number of proposals created.",
		}, []string{}),
		Ballots: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "ballots_total",
			Help:      "Total number of ballots recorded.",
		}, []string{}),
		Executed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "executed_total",
			Help:      "Total number of executed proposals.",
		}, []string{}),
		Rejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "rejected_total",
			Help:      "Total number of rejected proposals.",
		}, []string{}),
		FailedDispatches: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "failed_dispatches_total",
			Help:      "Total number of failed action batch dispatches.",
		}, []string{}),
	}
}

func NopGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		Proposals:        discard.NewCounter(),
		Ballots:          discard.NewCounter(),
		Executed:         discard.NewCounter(),
		Rejected:         discard.NewCounter(),
		FailedDispatches: discard.NewCounter(),
	}
}
