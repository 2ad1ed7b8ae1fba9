package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction carries no user column: its owner is the owner of its wallet.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	Type            TransactionType `json:"type"`
	SubcategoryID   uuid.UUID       `json:"subcategory_id"`
	AmountCents     int64           `json:"amount_cents"`
	Description     *string         `json:"description"`
	Tags            []string        `json:"tags"`
	TransactionDate Date            `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
