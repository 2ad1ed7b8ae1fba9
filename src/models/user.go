package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `json:"id"`
	CognitoSub string    `json:"cognito_sub"`
	Email      *string   `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}
