package rules

import (
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// Default builds the standard constraint set for a run, weighted from its
// parameter bundle. Soft weights come in from the caller every time; the
// rule set itself carries no tuning.
func Default(params model.Parameters) allocator.Rules {
	return allocator.Rules{
		Hard: []allocator.HardRule{
			NewGradeExclusiveRule(),
			NewAvailabilityRule(),
			NewCapacityRule(),
			NewNoOverlapRule(),
		},
		Soft: []allocator.SoftRule{
			NewDayPreferenceRule(params.PreferenceWeight),
			NewTimePreferenceRule(params.PreferenceWeight),
			NewBalanceRule(params.BalancingWeight),
		},
	}
}
