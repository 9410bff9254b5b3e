package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// GetAvailability retrieves availability responses for a month's sessions
func (d *DB) GetAvailability(ctx context.Context, month string) ([]db.Availability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.player_id, a.session_id, a.available, a.strength
		FROM availability a
		JOIN monthly_session s ON s.id = a.session_id
		WHERE to_char(s.session_date, 'YYYY-MM') = $1
		ORDER BY a.player_id, a.session_id
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var records []db.Availability
	for rows.Next() {
		var a db.Availability
		if err := rows.Scan(&a.PlayerID, &a.SessionID, &a.Available, &a.Strength); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return records, nil
}
