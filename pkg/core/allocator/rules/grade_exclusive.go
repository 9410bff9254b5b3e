package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// GradeExclusiveRule keeps sessions single-grade: a player may only be
// auto-allocated to a session of their own grade.
type GradeExclusiveRule struct{}

// NewGradeExclusiveRule creates the grade exclusivity hard rule
func NewGradeExclusiveRule() *GradeExclusiveRule {
	return &GradeExclusiveRule{}
}

func (r *GradeExclusiveRule) Name() string {
	return allocator.RuleGradeExclusive
}

func (r *GradeExclusiveRule) Check(state *allocator.State, player model.Player, session *allocator.SessionState) bool {
	return player.Grade == session.Session.Grade
}
