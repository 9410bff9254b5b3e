package allocator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// InfeasibleSession reports a session that could not reach minimum viable
// fill. This is data about the inputs, not an engine fault.
type InfeasibleSession struct {
	SessionID     string
	Assigned      int
	MinViableFill int
	Reason        model.WaitlistReason
}

// Outcome is the complete result of one engine run
type Outcome struct {
	Run         model.AllocationRun
	Allocations []model.Allocation

	// Waitlist holds unmet demand with reason codes
	Waitlist []model.WaitlistEntry

	// Deviations explains below-threshold confidence per allocation ID
	Deviations map[string][]Deviation

	// Infeasible lists sessions below minimum viable fill
	Infeasible []InfeasibleSession
}

// edge is one candidate (player, session) pairing
type edge struct {
	playerID  string
	sessionID string
}

// Run executes one allocation as a weighted assignment between available
// players and session capacity, committing edges in descending confidence
// order. The balancing penalty depends on running totals, so every commit
// shifts the weights of the remaining edges; each pick re-evaluates the
// survivors rather than trusting a one-shot sort.
//
// Cancellation is all-or-nothing: if ctx expires mid-run nothing is
// returned and the caller persists nothing.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	state, err := initState(cfg)
	if err != nil {
		return nil, err
	}

	threshold := cfg.CleanMatchThreshold
	if threshold == 0 {
		threshold = DefaultCleanMatchThreshold
	}

	// Candidate edges come from availability records in input order, so
	// identical inputs always walk the same sequence. Grade-mismatched
	// demand is excluded up front: those players are never considered for
	// the session and never reach the waitlist.
	var edges []edge
	for _, a := range cfg.Availability {
		if !a.Available {
			continue
		}
		player := state.playersByID[a.PlayerID]
		session := state.sessionsByID[a.SessionID]
		if player.Grade != session.Session.Grade {
			continue
		}
		edges = append(edges, edge{playerID: a.PlayerID, sessionID: a.SessionID})
	}

	allocations := []model.Allocation{}
	deviations := make(map[string][]Deviation)
	runID := uuid.New().String()

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrEngineTimeout, err)
		}

		bestIdx := -1
		var bestConfidence float64
		var bestTie uint64
		var bestResult ConstraintResult

		for i, e := range edges {
			player := state.playersByID[e.playerID]
			session := state.sessionsByID[e.sessionID]

			result := Evaluate(state, cfg.Rules, player, session)
			if !result.Feasible {
				continue
			}

			confidence, _ := Score(result, threshold)
			tie := tieKey(cfg.Parameters.TieBreakSeed, e.playerID, e.sessionID)

			if bestIdx == -1 || better(confidence, tie, e, bestConfidence, bestTie, edges[bestIdx]) {
				bestIdx = i
				bestConfidence = confidence
				bestTie = tie
				bestResult = result
			}
		}

		// No hard-feasible edge remains
		if bestIdx == -1 {
			break
		}

		chosen := edges[bestIdx]
		session := state.sessionsByID[chosen.sessionID]
		state.commit(chosen.playerID, session)

		allocation := model.Allocation{
			ID:         uuid.New().String(),
			RunID:      runID,
			SessionID:  chosen.sessionID,
			PlayerID:   chosen.playerID,
			Source:     model.SourceAuto,
			Confidence: bestConfidence,
			Status:     model.StatusSuggested,
		}
		allocations = append(allocations, allocation)

		if _, devs := Score(bestResult, threshold); len(devs) > 0 {
			deviations[allocation.ID] = devs
		}

		edges = append(edges[:bestIdx], edges[bestIdx+1:]...)
	}

	outcome := &Outcome{
		Run: model.AllocationRun{
			ID:         runID,
			Month:      cfg.Month,
			Parameters: cfg.Parameters,
			ExecutedAt: time.Now().UTC(),
		},
		Allocations: allocations,
		Waitlist:    buildWaitlist(state, edges),
		Deviations:  deviations,
		Infeasible:  findInfeasible(state, cfg),
	}
	outcome.Run.Summary = summarise(state, allocations, outcome.Waitlist)

	return outcome, nil
}

// better compares two candidate edges: confidence first, then the seeded
// tie hash, then player id, then session id. Total and deterministic.
func better(conf float64, tie uint64, e edge, bestConf float64, bestTie uint64, best edge) bool {
	if conf != bestConf {
		return conf > bestConf
	}
	if tie != bestTie {
		return tie < bestTie
	}
	if e.playerID != best.playerID {
		return e.playerID < best.playerID
	}
	return e.sessionID < best.sessionID
}

// buildWaitlist classifies the edges left over after the main loop.
// A leftover edge was blocked by capacity or by the player's own
// overlapping commitment; only the capacity case is unmet demand, since
// an overlap means the player is already assigned at that time.
func buildWaitlist(state *State, remaining []edge) []model.WaitlistEntry {
	waitlist := []model.WaitlistEntry{}
	for _, e := range remaining {
		session := state.sessionsByID[e.sessionID]
		if session.IsFull() {
			waitlist = append(waitlist, model.WaitlistEntry{
				PlayerID:  e.playerID,
				SessionID: e.sessionID,
				Reason:    model.ReasonCapacityExhausted,
			})
		}
	}
	return waitlist
}

// findInfeasible reports sessions below minimum viable fill with the
// dominant cause: nobody of the session's grade declared availability
// (grade_exclusive when wrong-grade availability exists, otherwise
// no_availability).
func findInfeasible(state *State, cfg Config) []InfeasibleSession {
	if cfg.MinViableFill <= 0 {
		return nil
	}

	availabilityBySession := make(map[string]int)
	matchingBySession := make(map[string]int)
	for _, a := range cfg.Availability {
		if !a.Available {
			continue
		}
		availabilityBySession[a.SessionID]++
		player := state.playersByID[a.PlayerID]
		session := state.sessionsByID[a.SessionID]
		if player.Grade == session.Session.Grade {
			matchingBySession[a.SessionID]++
		}
	}

	infeasible := []InfeasibleSession{}
	for _, session := range state.Sessions {
		if len(session.Assigned) >= cfg.MinViableFill {
			continue
		}
		id := session.Session.ID
		reason := model.ReasonNoAvailability
		if matchingBySession[id] == 0 && availabilityBySession[id] > 0 {
			reason = model.ReasonGradeExclusive
		}
		infeasible = append(infeasible, InfeasibleSession{
			SessionID:     id,
			Assigned:      len(session.Assigned),
			MinViableFill: cfg.MinViableFill,
			Reason:        reason,
		})
	}
	return infeasible
}

// summarise builds the run-level outcome digest
func summarise(state *State, allocations []model.Allocation, waitlist []model.WaitlistEntry) model.RunSummary {
	summary := model.RunSummary{UnmetDemand: len(waitlist)}

	totalCapacity := 0
	for _, session := range state.Sessions {
		totalCapacity += session.Session.Capacity
		if session.IsFull() {
			summary.Filled++
		} else {
			summary.Unfilled++
		}
	}
	if totalCapacity > 0 {
		summary.FillPercent = float64(len(allocations)) / float64(totalCapacity) * 100
	}

	if len(allocations) > 0 {
		confidences := make([]float64, len(allocations))
		for i, a := range allocations {
			confidences[i] = a.Confidence
		}
		summary.AvgConfidence = stat.Mean(confidences, nil)
	}

	return summary
}
