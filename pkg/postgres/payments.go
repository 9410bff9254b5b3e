package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// GetPaymentStatuses retrieves payment records for a month. Read-only
// reporting input; the engine never touches these.
func (d *DB) GetPaymentStatuses(ctx context.Context, month string) ([]db.PaymentStatus, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT player_id, month, paid, paid_at, amount_pence
		FROM payment_status
		WHERE month = $1
		ORDER BY player_id
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment statuses: %w", err)
	}
	defer rows.Close()

	var payments []db.PaymentStatus
	for rows.Next() {
		var p db.PaymentStatus
		var paidAt *time.Time
		if err := rows.Scan(&p.PlayerID, &p.Month, &p.Paid, &paidAt, &p.AmountPence); err != nil {
			return nil, fmt.Errorf("failed to scan payment status: %w", err)
		}
		if paidAt != nil {
			p.PaidAt = *paidAt
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment statuses: %w", err)
	}

	return payments, nil
}
