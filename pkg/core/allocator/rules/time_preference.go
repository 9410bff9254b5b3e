package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// timeMismatchPenalty is the raw penalty for an early/late mismatch.
// The run-time preference weight scales it.
const timeMismatchPenalty = 10.0

// TimePreferenceRule penalises pairings where the session's start time
// disagrees with the player's early/late preference.
type TimePreferenceRule struct {
	weight float64
}

// NewTimePreferenceRule creates the early/late soft rule with the run's
// preference weight
func NewTimePreferenceRule(weight float64) *TimePreferenceRule {
	return &TimePreferenceRule{weight: weight}
}

func (r *TimePreferenceRule) Name() string {
	return allocator.RuleTimePreference
}

func (r *TimePreferenceRule) Penalty(state *allocator.State, player model.Player, session *allocator.SessionState) float64 {
	if player.PrefersEarly != session.Session.IsEarly() {
		return timeMismatchPenalty
	}
	return 0
}

func (r *TimePreferenceRule) Weight() float64 {
	return r.weight
}
