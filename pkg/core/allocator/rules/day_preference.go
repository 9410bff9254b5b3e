package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// dayMismatchPenalty is the raw penalty for a weekday/weekend mismatch.
// The run-time preference weight scales it.
const dayMismatchPenalty = 10.0

// DayPreferenceRule penalises pairings where the session's weekday/weekend
// placement disagrees with the player's stated preference.
type DayPreferenceRule struct {
	weight float64
}

// NewDayPreferenceRule creates the weekday/weekend soft rule with the
// run's preference weight
func NewDayPreferenceRule(weight float64) *DayPreferenceRule {
	return &DayPreferenceRule{weight: weight}
}

func (r *DayPreferenceRule) Name() string {
	return allocator.RuleDayPreference
}

func (r *DayPreferenceRule) Penalty(state *allocator.State, player model.Player, session *allocator.SessionState) float64 {
	if player.PrefersWeekend != session.Session.IsWeekend() {
		return dayMismatchPenalty
	}
	return 0
}

func (r *DayPreferenceRule) Weight() float64 {
	return r.weight
}
