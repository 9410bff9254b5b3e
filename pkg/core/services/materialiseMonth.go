package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// MaterialiseMonthResult contains the materialisation results
type MaterialiseMonthResult struct {
	Month    string
	Created  []model.MonthlySession
	Skipped  int // dates excluded by config (holidays etc.)
	Existing int // (date, template) pairs already materialised
}

// MaterialiseMonth expands every session template's recurrence into
// concrete dated sessions for the target month. Dates in skipDates are
// left out; (date, template) pairs that already exist are never
// re-created, so organiser edits to materialised sessions survive.
func MaterialiseMonth(
	ctx context.Context,
	database db.SessionStore,
	month string,
	skipDates []string,
	logger *zap.Logger,
	dryRun bool,
) (*MaterialiseMonthResult, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: month %q is not in 2006-01 format", model.ErrValidation, month)
	}
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	logger.Debug("Materialising month", zap.String("month", month), zap.Bool("dry_run", dryRun))

	templates, err := database.GetSessionTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session templates: %w", err)
	}

	existing, err := database.GetMonthlySessions(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing sessions: %w", err)
	}
	existingPairs := make(map[string]bool, len(existing))
	for _, s := range existing {
		existingPairs[s.Date+"/"+s.TemplateID] = true
	}

	skip := make(map[string]bool, len(skipDates))
	for _, d := range skipDates {
		skip[d] = true
	}

	result := &MaterialiseMonthResult{Month: month}
	var inserts []db.MonthlySession

	for _, template := range templates {
		rule, err := rrule.StrToRRule(template.RRule)
		if err != nil {
			return nil, fmt.Errorf("%w: template %q has invalid rrule %q: %v", model.ErrValidation, template.ID, template.RRule, err)
		}
		rule.DTStart(monthStart)

		startMinute, err := parseClock(template.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: template %q start time: %v", model.ErrValidation, template.ID, err)
		}
		endMinute, err := parseClock(template.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: template %q end time: %v", model.ErrValidation, template.ID, err)
		}

		for _, occurrence := range rule.Between(monthStart, monthEnd, true) {
			date := occurrence.Format("2006-01-02")

			if skip[date] {
				result.Skipped++
				continue
			}
			if existingPairs[date+"/"+template.ID] {
				result.Existing++
				continue
			}

			session := model.MonthlySession{
				ID:          uuid.New().String(),
				TemplateID:  template.ID,
				Date:        date,
				StartMinute: startMinute,
				EndMinute:   endMinute,
				Grade:       model.Grade(template.Grade),
				Capacity:    template.Capacity,
				Venue:       template.Venue,
				Notes:       template.Notes,
			}
			result.Created = append(result.Created, session)
			inserts = append(inserts, db.FromModelSession(session))
		}
	}

	if dryRun {
		logger.Info("Dry run: sessions not saved", zap.Int("would_create", len(inserts)))
		return result, nil
	}

	if err := database.InsertMonthlySessions(ctx, inserts); err != nil {
		return nil, fmt.Errorf("failed to insert monthly sessions: %w", err)
	}

	logger.Info("Materialised month",
		zap.String("month", month),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped),
		zap.Int("existing", result.Existing))

	return result, nil
}

// parseClock converts "HH:MM" to minutes since midnight
func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q is not in HH:MM format", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%q has an invalid hour", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%q has an invalid minute", value)
	}
	return hours*60 + minutes, nil
}
