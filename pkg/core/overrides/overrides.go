package overrides

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// Stack errors for the linear command history
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Action is one requested manual edit against a run's allocations.
// Acknowledged must be set to commit an action that violates a hard
// constraint; without it the action returns a warning and changes nothing.
type Action struct {
	Kind            model.OverrideKind // reassign, swap or remove
	AllocationID    string
	TargetSessionID string // reassign: session to move the allocation to
	TargetPlayerID  string // swap: player to hand the slot to
	Actor           string
	Reason          string
	Acknowledged    bool
}

// Warning reports the hard rules a requested move would violate
type Warning struct {
	FailedRules []string
}

// Result is the outcome of Apply/Undo/Redo. When Warning is non-nil and
// Committed is false, the action was withheld pending acknowledgement.
type Result struct {
	Allocation *model.Allocation
	Committed  bool
	Warning    *Warning
	LogEntry   *model.OverrideLog
}

// command holds before/after snapshots of one committed action for the
// undo/redo stack
type command struct {
	kind   model.OverrideKind
	before model.Allocation
	after  model.Allocation
	actor  string
}

// Session is an override editing session pinned to a single run.
// A rerun never mutates that run, so in-flight edits stay valid against
// their original snapshot. The undo/redo stack is owned by this session
// alone and is never persisted; only the log entries it emits are.
type Session struct {
	runID        string
	rules        allocator.Rules
	players      []model.Player
	sessions     []model.MonthlySession
	availability []model.Availability
	allocations  map[string]*model.Allocation

	log       []model.OverrideLog
	undoStack []command
	redoStack []command
}

// NewSession opens an editing session against one run's output.
// Allocations belonging to other runs are ignored; actions that name them
// later fail with model.ErrConcurrentEdit.
func NewSession(runID string, players []model.Player, sessions []model.MonthlySession, availability []model.Availability, allocations []model.Allocation, rules allocator.Rules) *Session {
	byID := make(map[string]*model.Allocation)
	for _, a := range allocations {
		if a.RunID != runID {
			continue
		}
		copied := a
		byID[a.ID] = &copied
	}
	return &Session{
		runID:        runID,
		rules:        rules,
		players:      players,
		sessions:     sessions,
		availability: availability,
		allocations:  byID,
	}
}

// Allocations returns a snapshot of the run's allocations with this
// session's edits applied
func (s *Session) Allocations() []model.Allocation {
	out := make([]model.Allocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		out = append(out, *a)
	}
	return out
}

// Log returns the audit entries appended by this session, oldest first
func (s *Session) Log() []model.OverrideLog {
	return s.log
}

// Apply validates and (if clean or acknowledged) commits one manual edit.
// Every committed action appends exactly one audit entry and pushes an
// inverse onto the undo stack; any forward action clears the redo stack.
func (s *Session) Apply(action Action) (*Result, error) {
	alloc, ok := s.allocations[action.AllocationID]
	if !ok {
		return nil, fmt.Errorf("%w: allocation %q", model.ErrConcurrentEdit, action.AllocationID)
	}

	after := *alloc
	switch action.Kind {
	case model.OverrideReassign:
		target, err := s.findSession(action.TargetSessionID)
		if err != nil {
			return nil, err
		}
		after.SessionID = target.ID
		after.Status = model.StatusOverridden
		after.Source = model.SourceManual
	case model.OverrideSwap:
		if _, err := s.findPlayer(action.TargetPlayerID); err != nil {
			return nil, err
		}
		after.PlayerID = action.TargetPlayerID
		after.Status = model.StatusOverridden
		after.Source = model.SourceManual
	case model.OverrideRemove:
		after.Status = model.StatusRemoved
		after.Source = model.SourceManual
	default:
		return nil, fmt.Errorf("%w: unknown action kind %q", model.ErrValidation, action.Kind)
	}

	var warning *Warning
	if action.Kind != model.OverrideRemove {
		failed, confidence, err := s.validateMove(alloc.ID, after.PlayerID, after.SessionID)
		if err != nil {
			return nil, err
		}
		after.Confidence = confidence
		if len(failed) > 0 {
			warning = &Warning{FailedRules: failed}
			for _, name := range failed {
				if name == allocator.RuleCapacity {
					after.Overfull = true
				}
			}
		}
	}

	if warning != nil && !action.Acknowledged {
		// Warn but allow override: nothing committed until the actor
		// explicitly acknowledges the violation
		return &Result{Allocation: alloc, Warning: warning}, nil
	}

	before := *alloc
	*alloc = after

	entry := s.appendLog(model.OverrideLog{
		Kind:                action.Kind,
		Actor:               action.Actor,
		AllocationIDs:       []string{alloc.ID},
		PriorSessionID:      before.SessionID,
		NewSessionID:        after.SessionID,
		ConstraintViolation: warning != nil,
		Reason:              action.Reason,
	})

	s.undoStack = append(s.undoStack, command{
		kind:   action.Kind,
		before: before,
		after:  after,
		actor:  action.Actor,
	})
	s.redoStack = nil

	return &Result{Allocation: alloc, Committed: true, Warning: warning, LogEntry: entry}, nil
}

// Undo restores the most recent action's prior state and appends a
// compensating audit entry. The original entry is never deleted.
func (s *Session) Undo() (*Result, error) {
	if len(s.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}

	cmd := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]

	alloc := s.allocations[cmd.before.ID]
	*alloc = cmd.before

	entry := s.appendLog(model.OverrideLog{
		Kind:           model.OverrideUndo,
		Actor:          cmd.actor,
		AllocationIDs:  []string{alloc.ID},
		PriorSessionID: cmd.after.SessionID,
		NewSessionID:   cmd.before.SessionID,
		Reason:         fmt.Sprintf("undo %s", cmd.kind),
	})

	s.redoStack = append(s.redoStack, cmd)

	return &Result{Allocation: alloc, Committed: true, LogEntry: entry}, nil
}

// Redo reapplies the most recently undone action with a fresh audit entry
func (s *Session) Redo() (*Result, error) {
	if len(s.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	cmd := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]

	alloc := s.allocations[cmd.after.ID]
	*alloc = cmd.after

	entry := s.appendLog(model.OverrideLog{
		Kind:           model.OverrideRedo,
		Actor:          cmd.actor,
		AllocationIDs:  []string{alloc.ID},
		PriorSessionID: cmd.before.SessionID,
		NewSessionID:   cmd.after.SessionID,
		Reason:         fmt.Sprintf("redo %s", cmd.kind),
	})

	s.undoStack = append(s.undoStack, cmd)

	return &Result{Allocation: alloc, Committed: true, LogEntry: entry}, nil
}

// validateMove evaluates the constraint model for the pairing a move
// would create, with the moved allocation's own occupancy excluded
func (s *Session) validateMove(allocationID, playerID, sessionID string) ([]string, float64, error) {
	others := make([]model.Allocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		if a.ID == allocationID {
			continue
		}
		others = append(others, *a)
	}

	state, err := allocator.NewState(s.players, s.sessions, s.availability, others)
	if err != nil {
		return nil, 0, err
	}

	player, ok := state.Player(playerID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown player %q", model.ErrValidation, playerID)
	}
	session, ok := state.SessionByID(sessionID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown session %q", model.ErrValidation, sessionID)
	}

	result := allocator.Evaluate(state, s.rules, player, session)
	confidence, _ := allocator.Score(result, allocator.DefaultCleanMatchThreshold)
	return result.FailedHard, confidence, nil
}

func (s *Session) findSession(id string) (model.MonthlySession, error) {
	for _, session := range s.sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return model.MonthlySession{}, fmt.Errorf("%w: unknown session %q", model.ErrValidation, id)
}

func (s *Session) findPlayer(id string) (model.Player, error) {
	for _, player := range s.players {
		if player.ID == id {
			return player, nil
		}
	}
	return model.Player{}, fmt.Errorf("%w: unknown player %q", model.ErrValidation, id)
}

func (s *Session) appendLog(entry model.OverrideLog) *model.OverrideLog {
	entry.ID = uuid.New().String()
	entry.RunID = s.runID
	entry.At = time.Now().UTC()
	s.log = append(s.log, entry)
	return &s.log[len(s.log)-1]
}
