package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// GetPlayers retrieves the full player roster ordered by name
func (d *DB) GetPlayers(ctx context.Context) ([]db.Player, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, grade, prefers_weekend, prefers_early, notes
		FROM player
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []db.Player
	for rows.Next() {
		var p db.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Grade, &p.PrefersWeekend, &p.PrefersEarly, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}
