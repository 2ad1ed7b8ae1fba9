package db

import (
	"context"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func (p *Postgres) CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, subcategory_id, limit_cents, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, subcategory_id, limit_cents, period_start, period_end, created_at
	`
	var out models.Budget
	err := p.q.QueryRow(ctx, query,
		uuid.New(), b.UserID, b.SubcategoryID, b.LimitCents, b.PeriodStart, b.PeriodEnd).
		Scan(&out.ID, &out.UserID, &out.SubcategoryID, &out.LimitCents, &out.PeriodStart, &out.PeriodEnd, &out.CreatedAt)
	if err != nil {
		return models.Budget{}, err
	}
	return out, nil
}

func (p *Postgres) GetBudget(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	query := `
		SELECT id, user_id, subcategory_id, limit_cents, period_start, period_end, created_at
		FROM budgets WHERE id = $1
	`
	var b models.Budget
	err := p.q.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.UserID, &b.SubcategoryID, &b.LimitCents, &b.PeriodStart, &b.PeriodEnd, &b.CreatedAt)
	if err != nil {
		return models.Budget{}, mapNotFound(err, "budget")
	}
	return b, nil
}

// ListBudgets applies the period-overlap filters: a period_start bound keeps
// budgets ending on or after it, a period_end bound keeps budgets starting on
// or before it.
func (p *Postgres) ListBudgets(ctx context.Context, userID uuid.UUID, f PeriodFilter) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, subcategory_id, limit_cents, period_start, period_end, created_at
		FROM budgets
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

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.SubcategoryID, &b.LimitCents, &b.PeriodStart, &b.PeriodEnd, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (p *Postgres) UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	query := `
		UPDATE budgets
		SET subcategory_id = $1, limit_cents = $2, period_start = $3, period_end = $4
		WHERE id = $5
		RETURNING id, user_id, subcategory_id, limit_cents, period_start, period_end, created_at
	`
	var out models.Budget
	err := p.q.QueryRow(ctx, query,
		b.SubcategoryID, b.LimitCents, b.PeriodStart, b.PeriodEnd, b.ID).
		Scan(&out.ID, &out.UserID, &out.SubcategoryID, &out.LimitCents, &out.PeriodStart, &out.PeriodEnd, &out.CreatedAt)
	if err != nil {
		return models.Budget{}, mapNotFound(err, "budget")
	}
	return out, nil
}

func (p *Postgres) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1`
	cmd, err := p.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("budget")
	}
	return nil
}
