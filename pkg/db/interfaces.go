package db

import "context"

// PlayerStore defines the interface for player database operations
type PlayerStore interface {
	GetPlayers(ctx context.Context) ([]Player, error)
}

// SessionStore defines the interface for template and session operations
type SessionStore interface {
	GetSessionTemplates(ctx context.Context) ([]SessionTemplate, error)
	GetMonthlySessions(ctx context.Context, month string) ([]MonthlySession, error)
	InsertMonthlySessions(ctx context.Context, sessions []MonthlySession) error
}

// AvailabilityStore defines the interface for availability operations
type AvailabilityStore interface {
	GetAvailability(ctx context.Context, month string) ([]Availability, error)
}

// RunStore defines the interface for allocation run operations.
// Runs and their outcome summaries are append-only: there is no update
// operation, only inserts and reads.
type RunStore interface {
	GetRuns(ctx context.Context, month string) ([]AllocationRun, error)
	GetRun(ctx context.Context, runID string) (*AllocationRun, error)
	InsertRun(ctx context.Context, run *AllocationRun) error
}

// AllocationStore defines the interface for allocation operations.
// Allocation rows are never deleted; manual status transitions go
// through RunEditStore so they always land with their audit entries.
type AllocationStore interface {
	GetAllocations(ctx context.Context, runID string) ([]Allocation, error)
	InsertAllocations(ctx context.Context, allocations []Allocation) error
}

// WaitlistStore defines the interface for run waitlist operations
type WaitlistStore interface {
	GetWaitlist(ctx context.Context, runID string) ([]WaitlistEntry, error)
	InsertWaitlist(ctx context.Context, entries []WaitlistEntry) error
}

// RunEditStore persists an editing session's outcome. The allocation
// updates and their audit entries commit in a single transaction so a
// manual allocation can never exist without its log entry.
type RunEditStore interface {
	SaveRunEdits(ctx context.Context, allocations []Allocation, entries []OverrideLog) error
}

// OverrideLogStore defines the interface for audit log reads. Entries
// are written only through RunEditStore, never updated or deleted.
type OverrideLogStore interface {
	GetOverrideLogs(ctx context.Context, runID string) ([]OverrideLog, error)
}

// PaymentStore defines the interface for payment status reads
type PaymentStore interface {
	GetPaymentStatuses(ctx context.Context, month string) ([]PaymentStatus, error)
}
