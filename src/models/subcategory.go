package models

import "github.com/google/uuid"

// Subcategory is a classification label under one transaction-type bucket.
// System subcategories have no owner: they are visible to every user and
// immutable through the user-facing endpoints.
type Subcategory struct {
	ID              uuid.UUID       `json:"id"`
	TransactionType TransactionType `json:"transaction_type"`
	Name            string          `json:"name"`
	IsSystem        bool            `json:"is_system"`
	UserID          *uuid.UUID      `json:"user_id"`
}

func (s Subcategory) Owner() (uuid.UUID, bool) {
	if s.UserID == nil {
		return uuid.Nil, false
	}
	return *s.UserID, true
}
