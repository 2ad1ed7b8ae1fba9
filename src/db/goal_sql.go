package db

import (
	"context"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func (p *Postgres) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	query := `
		INSERT INTO goals (id, user_id, title, target_cents, goal_type, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, title, target_cents, goal_type, period_start, period_end, created_at
	`
	var out models.Goal
	err := p.q.QueryRow(ctx, query,
		uuid.New(), g.UserID, g.Title, g.TargetCents, g.GoalType, g.PeriodStart, g.PeriodEnd).
		Scan(&out.ID, &out.UserID, &out.Title, &out.TargetCents, &out.GoalType, &out.PeriodStart, &out.PeriodEnd, &out.CreatedAt)
	if err != nil {
		return models.Goal{}, err
	}
	return out, nil
}

func (p *Postgres) GetGoal(ctx context.Context, id uuid.UUID) (models.Goal, error) {
	query := `
		SELECT id, user_id, title, target_cents, goal_type, period_start, period_end, created_at
		FROM goals WHERE id = $1
	`
	var g models.Goal
	err := p.q.QueryRow(ctx, query, id).
		Scan(&g.ID, &g.UserID, &g.Title, &g.TargetCents, &g.GoalType, &g.PeriodStart, &g.PeriodEnd, &g.CreatedAt)
	if err != nil {
		return models.Goal{}, mapNotFound(err, "goal")
	}
	return g, nil
}

func (p *Postgres) ListGoals(ctx context.Context, userID uuid.UUID, f PeriodFilter) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, title, target_cents, goal_type, period_start, period_end, created_at
		FROM goals
		WHERE user_id = $1
		  AND ($2::date IS NULL OR period_end >= $2)
		  AND ($3::date IS NULL OR period_start <= $3)
		ORDER BY created_at DESC
	`
	rows, err := p.q.Query(ctx, query, userID, f.PeriodStart, f.PeriodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetCents, &g.GoalType, &g.PeriodStart, &g.PeriodEnd, &g.CreatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (p *Postgres) UpdateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	query := `
		UPDATE goals
		SET title = $1, target_cents = $2, goal_type = $3, period_start = $4, period_end = $5
		WHERE id = $6
		RETURNING id, user_id, title, target_cents, goal_type, period_start, period_end, created_at
	`
	var out models.Goal
	err := p.q.QueryRow(ctx, query,
		g.Title, g.TargetCents, g.GoalType, g.PeriodStart, g.PeriodEnd, g.ID).
		Scan(&out.ID, &out.UserID, &out.Title, &out.TargetCents, &out.GoalType, &out.PeriodStart, &out.PeriodEnd, &out.CreatedAt)
	if err != nil {
		return models.Goal{}, mapNotFound(err, "goal")
	}
	return out, nil
}

func (p *Postgres) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1`
	cmd, err := p.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("goal")
	}
	return nil
}
