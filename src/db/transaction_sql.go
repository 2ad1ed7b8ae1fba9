package db

import (
	"context"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func (p *Postgres) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, wallet_id, type, subcategory_id, amount_cents, description, tags, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, wallet_id, type, subcategory_id, amount_cents, description, tags, transaction_date, created_at
	`
	var t models.Transaction
	err := p.q.QueryRow(ctx, query,
		uuid.New(), tx.WalletID, tx.Type, tx.SubcategoryID, tx.AmountCents, tx.Description, tx.Tags, tx.TransactionDate).
		Scan(&t.ID, &t.WalletID, &t.Type, &t.SubcategoryID, &t.AmountCents, &t.Description, &t.Tags, &t.TransactionDate, &t.CreatedAt)
	if err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

func (p *Postgres) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	query := `
		SELECT id, wallet_id, type, subcategory_id, amount_cents, description, tags, transaction_date, created_at
		FROM transactions WHERE id = $1
	`
	var t models.Transaction
	err := p.q.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.WalletID, &t.Type, &t.SubcategoryID, &t.AmountCents, &t.Description, &t.Tags, &t.TransactionDate, &t.CreatedAt)
	if err != nil {
		return models.Transaction{}, mapNotFound(err, "transaction")
	}
	return t, nil
}

// ListTransactions scopes through the wallet relation: a transaction belongs
// to whoever owns its wallet.
func (p *Postgres) ListTransactions(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.wallet_id, t.type, t.subcategory_id, t.amount_cents, t.description, t.tags, t.transaction_date, t.created_at
		FROM transactions t
		JOIN wallets w ON t.wallet_id = w.id
		WHERE w.user_id = $1
		  AND ($2::uuid IS NULL OR t.wallet_id = $2)
		  AND ($3::text IS NULL OR t.type = $3)
		  AND ($4::date IS NULL OR t.transaction_date >= $4)
		  AND ($5::date IS NULL OR t.transaction_date <= $5)
		ORDER BY t.transaction_date DESC, t.created_at DESC
	`
	rows, err := p.q.Query(ctx, query, userID, f.WalletID, f.Type, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.SubcategoryID, &t.AmountCents, &t.Description, &t.Tags, &t.TransactionDate, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (p *Postgres) UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	query := `
		UPDATE transactions
		SET type = $1, subcategory_id = $2, amount_cents = $3, description = $4, tags = $5, transaction_date = $6
		WHERE id = $7
		RETURNING id, wallet_id, type, subcategory_id, amount_cents, description, tags, transaction_date, created_at
	`
	var t models.Transaction
	err := p.q.QueryRow(ctx, query,
		tx.Type, tx.SubcategoryID, tx.AmountCents, tx.Description, tx.Tags, tx.TransactionDate, tx.ID).
		Scan(&t.ID, &t.WalletID, &t.Type, &t.SubcategoryID, &t.AmountCents, &t.Description, &t.Tags, &t.TransactionDate, &t.CreatedAt)
	if err != nil {
		return models.Transaction{}, mapNotFound(err, "transaction")
	}
	return t, nil
}

func (p *Postgres) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`
	cmd, err := p.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("transaction")
	}
	return nil
}
