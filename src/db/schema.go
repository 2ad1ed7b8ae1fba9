package db

import "context"

// schemaStatements is applied one statement at a time on boot. Everything is
// idempotent, and cascades are declared here rather than in application code:
// deleting a user removes owned wallets, subcategories, budgets, and goals;
// deleting a wallet removes its transactions.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		cognito_sub TEXT NOT NULL UNIQUE,
		email TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS subcategories (
		id UUID PRIMARY KEY,
		transaction_type TEXT NOT NULL,
		name TEXT NOT NULL,
		is_system BOOLEAN NOT NULL DEFAULT FALSE,
		user_id UUID REFERENCES users(id) ON DELETE CASCADE
	)`,
	// COALESCE makes the null owner participate in uniqueness: the system
	// scope may not hold two identical (type, name) pairs either.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_subcategories_type_name_user
		ON subcategories (transaction_type, name,
			COALESCE(user_id, '00000000-0000-0000-0000-000000000000'))`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		wallet_id UUID NOT NULL REFERENCES wallets(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		subcategory_id UUID NOT NULL REFERENCES subcategories(id),
		amount_cents BIGINT NOT NULL,
		description TEXT,
		tags TEXT[] NOT NULL DEFAULT '{}',
		transaction_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subcategory_id UUID NOT NULL REFERENCES subcategories(id),
		limit_cents BIGINT NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		target_cents BIGINT NOT NULL,
		goal_type TEXT NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates any missing tables and indexes.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
