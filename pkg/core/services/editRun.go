package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/allocator/rules"
	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/core/overrides"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// EditRunStore defines the database operations needed to open and save an
// override editing session
type EditRunStore interface {
	GetRun(ctx context.Context, runID string) (*db.AllocationRun, error)
	GetPlayers(ctx context.Context) ([]db.Player, error)
	GetMonthlySessions(ctx context.Context, month string) ([]db.MonthlySession, error)
	GetAvailability(ctx context.Context, month string) ([]db.Availability, error)
	GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error)
	SaveRunEdits(ctx context.Context, allocations []db.Allocation, entries []db.OverrideLog) error
}

// OpenEditingSession loads a run's snapshot and pins an override editing
// session to it. The session validates moves against the same constraint
// model the run used, reweighted from the run's own stored parameters.
func OpenEditingSession(ctx context.Context, database EditRunStore, runID string, logger *zap.Logger) (*overrides.Session, error) {
	runRecord, err := database.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	if runRecord == nil {
		return nil, fmt.Errorf("%w: run %q not found", model.ErrValidation, runID)
	}
	run := runRecord.ToModel()

	playerRecords, err := database.GetPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	sessionRecords, err := database.GetMonthlySessions(ctx, run.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly sessions: %w", err)
	}
	availabilityRecords, err := database.GetAvailability(ctx, run.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	allocationRecords, err := database.GetAllocations(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}

	players := make([]model.Player, len(playerRecords))
	for i, p := range playerRecords {
		players[i] = p.ToModel()
	}
	sessions := make([]model.MonthlySession, len(sessionRecords))
	for i, s := range sessionRecords {
		sessions[i] = s.ToModel()
	}
	availability := make([]model.Availability, len(availabilityRecords))
	for i, a := range availabilityRecords {
		availability[i] = a.ToModel()
	}
	allocations := make([]model.Allocation, len(allocationRecords))
	for i, a := range allocationRecords {
		allocations[i] = a.ToModel()
	}

	logger.Debug("Opened editing session",
		zap.String("run_id", runID),
		zap.String("month", run.Month),
		zap.Int("allocations", len(allocations)))

	return overrides.NewSession(runID, players, sessions, availability, allocations, rules.Default(run.Parameters)), nil
}

// SaveEdits persists an editing session: every allocation touched by the
// session's audit log is updated and the log entries are appended, all in
// one transaction so an edited allocation is never saved without its
// audit trail. The undo/redo stack itself is never persisted.
func SaveEdits(ctx context.Context, database EditRunStore, session *overrides.Session, logger *zap.Logger) error {
	entries := session.Log()
	if len(entries) == 0 {
		return nil
	}

	touched := make(map[string]bool)
	for _, entry := range entries {
		for _, id := range entry.AllocationIDs {
			touched[id] = true
		}
	}
	touchedIDs := make([]string, 0, len(touched))
	for id := range touched {
		touchedIDs = append(touchedIDs, id)
	}
	sort.Strings(touchedIDs)

	current := make(map[string]model.Allocation)
	for _, a := range session.Allocations() {
		current[a.ID] = a
	}

	allocationRecords := make([]db.Allocation, 0, len(touchedIDs))
	for _, id := range touchedIDs {
		allocation, ok := current[id]
		if !ok {
			return fmt.Errorf("%w: logged allocation %q missing from session", model.ErrValidation, id)
		}
		allocationRecords = append(allocationRecords, db.FromModelAllocation(allocation))
	}

	logRecords := make([]db.OverrideLog, len(entries))
	for i, entry := range entries {
		logRecords[i] = db.FromModelOverrideLog(entry)
	}

	if err := database.SaveRunEdits(ctx, allocationRecords, logRecords); err != nil {
		return fmt.Errorf("failed to save run edits: %w", err)
	}

	logger.Info("Saved editing session",
		zap.Int("allocations_updated", len(allocationRecords)),
		zap.Int("log_entries", len(entries)))

	return nil
}
