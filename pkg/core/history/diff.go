package history

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// PlayerDelta shows how one player's assignments and confidence moved
// between two runs of the same month
type PlayerDelta struct {
	PlayerID string

	// AddedSessions are assigned in B but not A; RemovedSessions the reverse
	AddedSessions   []string
	RemovedSessions []string

	AvgConfidenceA float64
	AvgConfidenceB float64
}

// SessionDelta shows how one session's roster moved between two runs
type SessionDelta struct {
	SessionID string

	AddedPlayers   []string
	RemovedPlayers []string

	AvgConfidenceA float64
	AvgConfidenceB float64
}

// RunDiff is a side-by-side comparison of two runs, used to justify a
// weight change to the organiser
type RunDiff struct {
	RunA model.AllocationRun
	RunB model.AllocationRun

	Players  []PlayerDelta
	Sessions []SessionDelta
}

// Diff compares two runs of the same month. Only players and sessions
// whose assignments or confidence actually changed appear in the deltas.
func Diff(a, b RunRecord) (*RunDiff, error) {
	if a.Run.Month != b.Run.Month {
		return nil, fmt.Errorf("%w: cannot diff runs for months %s and %s", model.ErrValidation, a.Run.Month, b.Run.Month)
	}

	diff := &RunDiff{RunA: a.Run, RunB: b.Run}

	playerSessionsA, playerConfA := indexByPlayer(a.Allocations)
	playerSessionsB, playerConfB := indexByPlayer(b.Allocations)
	for _, playerID := range unionKeys(playerSessionsA, playerSessionsB) {
		added := subtract(playerSessionsB[playerID], playerSessionsA[playerID])
		removed := subtract(playerSessionsA[playerID], playerSessionsB[playerID])
		confA := mean(playerConfA[playerID])
		confB := mean(playerConfB[playerID])
		if len(added) == 0 && len(removed) == 0 && confA == confB {
			continue
		}
		diff.Players = append(diff.Players, PlayerDelta{
			PlayerID:        playerID,
			AddedSessions:   added,
			RemovedSessions: removed,
			AvgConfidenceA:  confA,
			AvgConfidenceB:  confB,
		})
	}

	sessionPlayersA, sessionConfA := indexBySession(a.Allocations)
	sessionPlayersB, sessionConfB := indexBySession(b.Allocations)
	for _, sessionID := range unionKeys(sessionPlayersA, sessionPlayersB) {
		added := subtract(sessionPlayersB[sessionID], sessionPlayersA[sessionID])
		removed := subtract(sessionPlayersA[sessionID], sessionPlayersB[sessionID])
		confA := mean(sessionConfA[sessionID])
		confB := mean(sessionConfB[sessionID])
		if len(added) == 0 && len(removed) == 0 && confA == confB {
			continue
		}
		diff.Sessions = append(diff.Sessions, SessionDelta{
			SessionID:      sessionID,
			AddedPlayers:   added,
			RemovedPlayers: removed,
			AvgConfidenceA: confA,
			AvgConfidenceB: confB,
		})
	}

	return diff, nil
}

func indexByPlayer(allocations []model.Allocation) (map[string][]string, map[string][]float64) {
	sessions := make(map[string][]string)
	confidences := make(map[string][]float64)
	for _, a := range allocations {
		if !a.Active() {
			continue
		}
		sessions[a.PlayerID] = append(sessions[a.PlayerID], a.SessionID)
		confidences[a.PlayerID] = append(confidences[a.PlayerID], a.Confidence)
	}
	return sessions, confidences
}

func indexBySession(allocations []model.Allocation) (map[string][]string, map[string][]float64) {
	players := make(map[string][]string)
	confidences := make(map[string][]float64)
	for _, a := range allocations {
		if !a.Active() {
			continue
		}
		players[a.SessionID] = append(players[a.SessionID], a.PlayerID)
		confidences[a.SessionID] = append(confidences[a.SessionID], a.Confidence)
	}
	return players, confidences
}

func unionKeys(a, b map[string][]string) []string {
	keys := make(map[string]bool)
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func subtract(from, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, v := range remove {
		removeSet[v] = true
	}
	out := []string{}
	for _, v := range from {
		if !removeSet[v] {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// mean guards the empty case; stat.Mean returns NaN for no samples
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
