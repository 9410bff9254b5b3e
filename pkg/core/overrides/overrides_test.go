package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/allocator/rules"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// editingFixture opens a session against a saved run: two grade A
// sessions of capacity one, p1 assigned to the first, p2 assigned to the
// second, and p3 a grade B player on the roster.
func editingFixture(t *testing.T) *Session {
	t.Helper()

	players := []model.Player{
		{ID: "p1", FirstName: "Asha", LastName: "Patel", Grade: model.GradeA},
		{ID: "p2", FirstName: "Ben", LastName: "Okoro", Grade: model.GradeA},
		{ID: "p3", FirstName: "Carla", LastName: "Reyes", Grade: model.GradeB},
	}
	sessions := []model.MonthlySession{
		{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 1},
		{ID: "s2", Date: "2025-03-10", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 1},
	}
	availability := []model.Availability{
		{PlayerID: "p1", SessionID: "s1", Available: true},
		{PlayerID: "p1", SessionID: "s2", Available: true},
		{PlayerID: "p2", SessionID: "s1", Available: true},
		{PlayerID: "p2", SessionID: "s2", Available: true},
	}
	allocations := []model.Allocation{
		{ID: "a1", RunID: "run-1", SessionID: "s1", PlayerID: "p1", Source: model.SourceAuto, Confidence: 100, Status: model.StatusSuggested},
		{ID: "a2", RunID: "run-1", SessionID: "s2", PlayerID: "p2", Source: model.SourceAuto, Confidence: 100, Status: model.StatusSuggested},
		// Belongs to another run and must be invisible to this session
		{ID: "stale", RunID: "run-0", SessionID: "s1", PlayerID: "p2", Source: model.SourceAuto, Confidence: 100, Status: model.StatusSuggested},
	}

	return NewSession("run-1", players, sessions, availability, allocations, rules.Default(model.Parameters{}))
}

func allocationByID(t *testing.T, s *Session, id string) model.Allocation {
	t.Helper()
	for _, a := range s.Allocations() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("allocation %s not in session", id)
	return model.Allocation{}
}

func TestApply_SwapAcrossGradeIsWarnedThenCommitted(t *testing.T) {
	session := editingFixture(t)

	// Handing p1's grade A slot to the grade B player draws a warning
	// and changes nothing
	action := Action{
		Kind:           model.OverrideSwap,
		AllocationID:   "a1",
		TargetPlayerID: "p3",
		Actor:          "organiser",
		Reason:         "p1 injured",
	}
	result, err := session.Apply(action)
	require.NoError(t, err)

	assert.False(t, result.Committed)
	require.NotNil(t, result.Warning)
	assert.Contains(t, result.Warning.FailedRules, allocator.RuleGradeExclusive)
	assert.Empty(t, session.Log(), "a withheld action must not reach the audit log")
	assert.Equal(t, "p1", allocationByID(t, session, "a1").PlayerID)

	// Acknowledging the violation commits it
	action.Acknowledged = true
	result, err = session.Apply(action)
	require.NoError(t, err)

	assert.True(t, result.Committed)
	updated := allocationByID(t, session, "a1")
	assert.Equal(t, "p3", updated.PlayerID)
	assert.Equal(t, model.StatusOverridden, updated.Status)
	assert.Equal(t, model.SourceManual, updated.Source)

	entries := session.Log()
	require.Len(t, entries, 1, "exactly one audit entry per committed action")
	assert.Equal(t, model.OverrideSwap, entries[0].Kind)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, "organiser", entries[0].Actor)
	assert.True(t, entries[0].ConstraintViolation)
	assert.Equal(t, "p1 injured", entries[0].Reason)
	assert.Equal(t, []string{"a1"}, entries[0].AllocationIDs)
}

func TestApply_CleanReassignCommitsImmediately(t *testing.T) {
	session := editingFixture(t)

	// Free s2 first so the reassign target has room
	_, err := session.Apply(Action{Kind: model.OverrideRemove, AllocationID: "a2", Actor: "organiser"})
	require.NoError(t, err)

	result, err := session.Apply(Action{
		Kind:            model.OverrideReassign,
		AllocationID:    "a1",
		TargetSessionID: "s2",
		Actor:           "organiser",
	})
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Nil(t, result.Warning)

	moved := allocationByID(t, session, "a1")
	assert.Equal(t, "s2", moved.SessionID)
	assert.Equal(t, model.StatusOverridden, moved.Status)
	assert.False(t, moved.Overfull)

	require.Len(t, session.Log(), 2)
	assert.Equal(t, "s1", session.Log()[1].PriorSessionID)
	assert.Equal(t, "s2", session.Log()[1].NewSessionID)
}

func TestApply_ReassignOntoFullSessionMarksOverfull(t *testing.T) {
	session := editingFixture(t)

	action := Action{
		Kind:            model.OverrideReassign,
		AllocationID:    "a1",
		TargetSessionID: "s2",
		Actor:           "organiser",
	}
	result, err := session.Apply(action)
	require.NoError(t, err)
	require.NotNil(t, result.Warning)
	assert.Contains(t, result.Warning.FailedRules, allocator.RuleCapacity)

	action.Acknowledged = true
	result, err = session.Apply(action)
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.True(t, result.Allocation.Overfull,
		"pushing a session past capacity must mark the allocation overfull")
}

func TestApply_RemoveReopensTheSlot(t *testing.T) {
	session := editingFixture(t)

	result, err := session.Apply(Action{Kind: model.OverrideRemove, AllocationID: "a2", Actor: "organiser"})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, model.StatusRemoved, result.Allocation.Status)
	assert.False(t, result.Allocation.Active())

	// The freed slot now accepts a clean reassign
	result, err = session.Apply(Action{
		Kind:            model.OverrideReassign,
		AllocationID:    "a1",
		TargetSessionID: "s2",
		Actor:           "organiser",
	})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Nil(t, result.Warning)
}

func TestApply_UnknownAllocationIsConcurrentEdit(t *testing.T) {
	session := editingFixture(t)

	// "stale" exists in storage but belongs to a different run
	for _, id := range []string{"stale", "missing"} {
		_, err := session.Apply(Action{Kind: model.OverrideRemove, AllocationID: id, Actor: "organiser"})
		assert.ErrorIs(t, err, model.ErrConcurrentEdit)
	}
}

func TestUndoRedo_RestoreExactStateAndCompensate(t *testing.T) {
	session := editingFixture(t)
	original := allocationByID(t, session, "a2")

	_, err := session.Apply(Action{Kind: model.OverrideRemove, AllocationID: "a2", Actor: "organiser"})
	require.NoError(t, err)

	// Undo restores the exact prior allocation and appends its own entry
	result, err := session.Undo()
	require.NoError(t, err)
	assert.Equal(t, original, *result.Allocation)

	entries := session.Log()
	require.Len(t, entries, 2, "undo compensates, it never erases")
	assert.Equal(t, model.OverrideUndo, entries[1].Kind)

	// Redo reapplies the removal with a third entry
	result, err = session.Redo()
	require.NoError(t, err)
	assert.Equal(t, model.StatusRemoved, result.Allocation.Status)
	require.Len(t, session.Log(), 3)
	assert.Equal(t, model.OverrideRedo, session.Log()[2].Kind)
}

func TestUndoRedo_EmptyStacksError(t *testing.T) {
	session := editingFixture(t)

	_, err := session.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = session.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestApply_ForwardActionClearsRedo(t *testing.T) {
	session := editingFixture(t)

	_, err := session.Apply(Action{Kind: model.OverrideRemove, AllocationID: "a2", Actor: "organiser"})
	require.NoError(t, err)
	_, err = session.Undo()
	require.NoError(t, err)

	// A fresh forward action invalidates the redo branch
	_, err = session.Apply(Action{Kind: model.OverrideRemove, AllocationID: "a1", Actor: "organiser"})
	require.NoError(t, err)

	_, err = session.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestApply_WithheldActionLeavesUndoUntouched(t *testing.T) {
	session := editingFixture(t)

	// Unacknowledged violating swap: warned, not committed
	_, err := session.Apply(Action{
		Kind:           model.OverrideSwap,
		AllocationID:   "a1",
		TargetPlayerID: "p3",
		Actor:          "organiser",
	})
	require.NoError(t, err)

	_, err = session.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo, "a warned action must not be undoable")
}
