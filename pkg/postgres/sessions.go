package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// GetSessionTemplates retrieves all recurring session templates
func (d *DB) GetSessionTemplates(ctx context.Context) ([]db.SessionTemplate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, rrule, start_time, end_time, grade, capacity, venue, notes
		FROM session_template
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query session templates: %w", err)
	}
	defer rows.Close()

	var templates []db.SessionTemplate
	for rows.Next() {
		var t db.SessionTemplate
		if err := rows.Scan(&t.ID, &t.RRule, &t.StartTime, &t.EndTime, &t.Grade, &t.Capacity, &t.Venue, &t.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan session template: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session templates: %w", err)
	}

	return templates, nil
}

// GetMonthlySessions retrieves a month's materialised sessions ordered by
// date then start time
func (d *DB) GetMonthlySessions(ctx context.Context, month string) ([]db.MonthlySession, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, template_id, session_date, start_minute, end_minute, grade, capacity, venue, notes
		FROM monthly_session
		WHERE to_char(session_date, 'YYYY-MM') = $1
		ORDER BY session_date, start_minute, id
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly sessions: %w", err)
	}
	defer rows.Close()

	var sessions []db.MonthlySession
	for rows.Next() {
		var s db.MonthlySession
		var date time.Time
		if err := rows.Scan(&s.ID, &s.TemplateID, &date, &s.StartMinute, &s.EndMinute, &s.Grade, &s.Capacity, &s.Venue, &s.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan monthly session: %w", err)
		}
		s.Date = date.Format("2006-01-02")
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly sessions: %w", err)
	}

	return sessions, nil
}

// InsertMonthlySessions inserts materialised sessions in one transaction
func (d *DB) InsertMonthlySessions(ctx context.Context, sessions []db.MonthlySession) error {
	if len(sessions) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range sessions {
		_, err := tx.Exec(ctx, `
			INSERT INTO monthly_session (id, template_id, session_date, start_minute, end_minute, grade, capacity, venue, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.ID, s.TemplateID, s.Date, s.StartMinute, s.EndMinute, s.Grade, s.Capacity, s.Venue, s.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert monthly session: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
