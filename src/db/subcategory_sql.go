package db

import (
	"context"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func (p *Postgres) CreateSubcategory(ctx context.Context, sub models.Subcategory) (models.Subcategory, error) {
	query := `
		INSERT INTO subcategories (id, transaction_type, name, is_system, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, transaction_type, name, is_system, user_id
	`
	var s models.Subcategory
	err := p.q.QueryRow(ctx, query, uuid.New(), sub.TransactionType, sub.Name, sub.IsSystem, sub.UserID).
		Scan(&s.ID, &s.TransactionType, &s.Name, &s.IsSystem, &s.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Subcategory{}, apperr.Validation("subcategory already exists")
		}
		return models.Subcategory{}, err
	}
	return s, nil
}

func (p *Postgres) GetSubcategory(ctx context.Context, id uuid.UUID) (models.Subcategory, error) {
	query := `
		SELECT id, transaction_type, name, is_system, user_id
		FROM subcategories WHERE id = $1
	`
	var s models.Subcategory
	err := p.q.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.TransactionType, &s.Name, &s.IsSystem, &s.UserID)
	if err != nil {
		return models.Subcategory{}, mapNotFound(err, "subcategory")
	}
	return s, nil
}

// ListSubcategories returns the system catalog plus the user's own labels.
func (p *Postgres) ListSubcategories(ctx context.Context, userID uuid.UUID, typ *models.TransactionType) ([]models.Subcategory, error) {
	query := `
		SELECT id, transaction_type, name, is_system, user_id
		FROM subcategories
		WHERE (user_id IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR transaction_type = $2)
		ORDER BY transaction_type, name
	`
	rows, err := p.q.Query(ctx, query, userID, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subcategory
	for rows.Next() {
		var s models.Subcategory
		err := rows.Scan(&s.ID, &s.TransactionType, &s.Name, &s.IsSystem, &s.UserID)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (p *Postgres) FindSystemSubcategory(ctx context.Context, typ models.TransactionType, name string) (models.Subcategory, error) {
	query := `
		SELECT id, transaction_type, name, is_system, user_id
		FROM subcategories
		WHERE transaction_type = $1 AND name = $2 AND user_id IS NULL
	`
	var s models.Subcategory
	err := p.q.QueryRow(ctx, query, typ, name).
		Scan(&s.ID, &s.TransactionType, &s.Name, &s.IsSystem, &s.UserID)
	if err != nil {
		return models.Subcategory{}, mapNotFound(err, "subcategory")
	}
	return s, nil
}

func (p *Postgres) UpdateSubcategoryName(ctx context.Context, id uuid.UUID, name string) (models.Subcategory, error) {
	query := `
		UPDATE subcategories SET name = $1
		WHERE id = $2
		RETURNING id, transaction_type, name, is_system, user_id
	`
	var s models.Subcategory
	err := p.q.QueryRow(ctx, query, name, id).
		Scan(&s.ID, &s.TransactionType, &s.Name, &s.IsSystem, &s.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Subcategory{}, apperr.Validation("subcategory already exists")
		}
		return models.Subcategory{}, mapNotFound(err, "subcategory")
	}
	return s, nil
}

func (p *Postgres) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subcategories WHERE id = $1`
	cmd, err := p.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("subcategory")
	}
	return nil
}
