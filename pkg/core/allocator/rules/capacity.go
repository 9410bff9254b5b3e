package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// CapacityRule blocks pairings onto sessions that are at or over capacity
type CapacityRule struct{}

// NewCapacityRule creates the capacity hard rule
func NewCapacityRule() *CapacityRule {
	return &CapacityRule{}
}

func (r *CapacityRule) Name() string {
	return allocator.RuleCapacity
}

func (r *CapacityRule) Check(state *allocator.State, player model.Player, session *allocator.SessionState) bool {
	return !session.IsFull()
}
