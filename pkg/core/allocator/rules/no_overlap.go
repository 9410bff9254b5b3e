package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// NoOverlapRule blocks a player from holding two allocations whose
// sessions collide in time on the same date.
type NoOverlapRule struct{}

// NewNoOverlapRule creates the temporal overlap hard rule
func NewNoOverlapRule() *NoOverlapRule {
	return &NoOverlapRule{}
}

func (r *NoOverlapRule) Name() string {
	return allocator.RuleNoOverlap
}

func (r *NoOverlapRule) Check(state *allocator.State, player model.Player, session *allocator.SessionState) bool {
	for _, committed := range state.CommittedSessions(player.ID) {
		if committed == session {
			// Already holds this exact session; treat as a collision so the
			// pairing can't be committed twice
			return false
		}
		if committed.Session.Overlaps(session.Session) {
			return false
		}
	}
	return true
}
