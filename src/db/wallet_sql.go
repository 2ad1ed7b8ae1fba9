package db

import (
	"context"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func (p *Postgres) CreateWallet(ctx context.Context, userID uuid.UUID, name string) (models.Wallet, error) {
	query := `
		INSERT INTO wallets (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, created_at
	`
	var w models.Wallet
	err := p.q.QueryRow(ctx, query, uuid.New(), userID, name).
		Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt)
	if err != nil {
		return models.Wallet{}, err
	}
	return w, nil
}

func (p *Postgres) GetWallet(ctx context.Context, id uuid.UUID) (models.Wallet, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM wallets WHERE id = $1
	`
	var w models.Wallet
	err := p.q.QueryRow(ctx, query, id).
		Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt)
	if err != nil {
		return models.Wallet{}, mapNotFound(err, "wallet")
	}
	return w, nil
}

func (p *Postgres) ListWallets(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM wallets WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := p.q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		var w models.Wallet
		err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (p *Postgres) UpdateWallet(ctx context.Context, id uuid.UUID, name string) (models.Wallet, error) {
	query := `
		UPDATE wallets SET name = $1
		WHERE id = $2
		RETURNING id, user_id, name, created_at
	`
	var w models.Wallet
	err := p.q.QueryRow(ctx, query, name, id).
		Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt)
	if err != nil {
		return models.Wallet{}, mapNotFound(err, "wallet")
	}
	return w, nil
}

func (p *Postgres) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM wallets WHERE id = $1`
	cmd, err := p.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("wallet")
	}
	return nil
}
