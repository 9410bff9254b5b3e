package allocator

import "github.com/jakechorley/baddersbot/pkg/core/model"

// HardRule is a constraint whose violation makes a (player, session)
// pairing infeasible for automatic allocation.
type HardRule interface {
	// Name identifies the rule in waitlist reasons and audit entries
	Name() string

	// Check returns true if the pairing satisfies the rule
	Check(state *State, player model.Player, session *SessionState) bool
}

// SoftRule is a constraint whose violation only reduces a pairing's
// confidence score. Weights are supplied at construction from the run
// parameters; the rule itself carries no default.
type SoftRule interface {
	// Name identifies the rule in deviation reasons
	Name() string

	// Penalty returns the raw penalty for the pairing (0 = satisfied)
	Penalty(state *State, player model.Player, session *SessionState) float64

	// Weight is the run-time multiplier applied to the raw penalty
	Weight() float64
}

// Rules is the full constraint set evaluated for each pairing
type Rules struct {
	Hard []HardRule
	Soft []SoftRule
}

// RuleFiring records one soft rule that fired against a pairing
type RuleFiring struct {
	Rule     string
	Penalty  float64 // raw penalty from the rule
	Weighted float64 // penalty after the run-time weight
}

// ConstraintResult is the full evaluation of one (player, session) pairing
type ConstraintResult struct {
	// Feasible is true when every hard rule passed
	Feasible bool

	// FailedHard lists the names of hard rules that failed
	FailedHard []string

	// Firings lists the soft rules that fired, with their penalties
	Firings []RuleFiring
}

// Evaluate runs every hard and soft rule for a (player, session) pairing.
// Soft rules are evaluated even when a hard rule fails so the override
// manager can show the complete picture for a warned move.
func Evaluate(state *State, rules Rules, player model.Player, session *SessionState) ConstraintResult {
	result := ConstraintResult{Feasible: true}

	for _, rule := range rules.Hard {
		if !rule.Check(state, player, session) {
			result.Feasible = false
			result.FailedHard = append(result.FailedHard, rule.Name())
		}
	}

	for _, rule := range rules.Soft {
		penalty := rule.Penalty(state, player, session)
		if penalty == 0 {
			continue
		}
		result.Firings = append(result.Firings, RuleFiring{
			Rule:     rule.Name(),
			Penalty:  penalty,
			Weighted: penalty * rule.Weight(),
		})
	}

	return result
}

// HardFailed reports whether a specific hard rule failed in the result
func (r ConstraintResult) HardFailed(name string) bool {
	for _, failed := range r.FailedHard {
		if failed == name {
			return true
		}
	}
	return false
}
