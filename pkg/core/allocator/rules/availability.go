package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// AvailabilityRule requires an explicit "available" response for the
// pairing. The engine already builds candidates from availability, so
// during a run this never fails; it matters when the override manager
// validates a manual move onto a session the player never declared.
type AvailabilityRule struct{}

// NewAvailabilityRule creates the availability hard rule
func NewAvailabilityRule() *AvailabilityRule {
	return &AvailabilityRule{}
}

func (r *AvailabilityRule) Name() string {
	return allocator.RuleAvailability
}

func (r *AvailabilityRule) Check(state *allocator.State, player model.Player, session *allocator.SessionState) bool {
	_, ok := state.AvailabilityFor(player.ID, session.Session.ID)
	return ok
}
