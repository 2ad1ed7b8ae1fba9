package db

import (
	"context"

	"dalla-server/src/models"

	"github.com/google/uuid"
)

func (p *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	query := `
		SELECT id, cognito_sub, email, created_at
		FROM users WHERE id = $1
	`
	var u models.User
	err := p.q.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.CognitoSub, &u.Email, &u.CreatedAt)
	if err != nil {
		return models.User{}, mapNotFound(err, "user")
	}
	return u, nil
}

func (p *Postgres) GetUserBySub(ctx context.Context, sub string) (models.User, error) {
	query := `
		SELECT id, cognito_sub, email, created_at
		FROM users WHERE cognito_sub = $1
	`
	var u models.User
	err := p.q.QueryRow(ctx, query, sub).
		Scan(&u.ID, &u.CognitoSub, &u.Email, &u.CreatedAt)
	if err != nil {
		return models.User{}, mapNotFound(err, "user")
	}
	return u, nil
}

func (p *Postgres) CreateUser(ctx context.Context, sub string, email *string) (models.User, error) {
	query := `
		INSERT INTO users (id, cognito_sub, email)
		VALUES ($1, $2, $3)
		RETURNING id, cognito_sub, email, created_at
	`
	var u models.User
	err := p.q.QueryRow(ctx, query, uuid.New(), sub, email).
		Scan(&u.ID, &u.CognitoSub, &u.Email, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (p *Postgres) UpdateUserEmail(ctx context.Context, id uuid.UUID, email *string) (models.User, error) {
	query := `
		UPDATE users SET email = $1
		WHERE id = $2
		RETURNING id, cognito_sub, email, created_at
	`
	var u models.User
	err := p.q.QueryRow(ctx, query, email, id).
		Scan(&u.ID, &u.CognitoSub, &u.Email, &u.CreatedAt)
	if err != nil {
		return models.User{}, mapNotFound(err, "user")
	}
	return u, nil
}
