package rules

import (
	"gonum.org/v1/gonum/stat"

	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// balancePenaltyPerSession is the raw penalty per session a player sits
// above the cycle mean. The run-time balancing weight scales it.
const balancePenaltyPerSession = 8.0

// BalanceRule discourages uneven total-session counts across players.
// The penalty grows with the difference between the player's running
// total this run and the mean total across eligible players, so a player
// who is already ahead of the pack scores worse on every further session.
// Re-evaluated after every commit because each commit moves both the
// player's total and the mean.
type BalanceRule struct {
	weight float64
}

// NewBalanceRule creates the session-count balancing soft rule with the
// run's balancing weight
func NewBalanceRule(weight float64) *BalanceRule {
	return &BalanceRule{weight: weight}
}

func (r *BalanceRule) Name() string {
	return allocator.RuleBalance
}

func (r *BalanceRule) Penalty(state *allocator.State, player model.Player, session *allocator.SessionState) float64 {
	counts := state.AllocationCounts()
	if len(counts) == 0 {
		return 0
	}

	mean := stat.Mean(counts, nil)
	excess := float64(state.AllocationCount(player.ID)) - mean
	if excess <= 0 {
		return 0
	}
	return excess * balancePenaltyPerSession
}

func (r *BalanceRule) Weight() float64 {
	return r.weight
}
