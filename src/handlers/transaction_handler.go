package handlers

import (
	"context"
	"net/http"
	"net/url"

	"dalla-server/src/apperr"
	"dalla-server/src/db"
	"dalla-server/src/models"
	"dalla-server/src/scope"

	"github.com/google/uuid"
)

type transactionCreateRequest struct {
	WalletID        uuid.UUID              `json:"wallet_id"`
	Type            models.TransactionType `json:"type"`
	SubcategoryID   uuid.UUID              `json:"subcategory_id"`
	AmountCents     int64                  `json:"amount_cents"`
	Description     *string                `json:"description"`
	Tags            []string               `json:"tags"`
	TransactionDate models.Date            `json:"transaction_date"`
}

type transactionUpdateRequest struct {
	Type            *models.TransactionType `json:"type"`
	SubcategoryID   *uuid.UUID              `json:"subcategory_id"`
	AmountCents     *int64                  `json:"amount_cents"`
	Description     *string                 `json:"description"`
	Tags            *[]string               `json:"tags"`
	TransactionDate *models.Date            `json:"transaction_date"`
}

var transactionResource = resource[models.Transaction, transactionCreateRequest, transactionUpdateRequest]{
	name: "transaction",
	list: func(ctx context.Context, s db.Store, userID uuid.UUID, q url.Values) ([]models.Transaction, error) {
		var f db.TransactionFilter
		var err error
		if f.WalletID, err = queryUUID(q, "wallet_id"); err != nil {
			return nil, err
		}
		if f.Type, err = queryType(q, "type"); err != nil {
			return nil, err
		}
		if f.DateFrom, err = queryDate(q, "date_from"); err != nil {
			return nil, err
		}
		if f.DateTo, err = queryDate(q, "date_to"); err != nil {
			return nil, err
		}
		return s.ListTransactions(ctx, userID, f)
	},
	create: func(ctx context.Context, s db.Store, userID uuid.UUID, body transactionCreateRequest) (models.Transaction, error) {
		if !body.Type.Valid() {
			return models.Transaction{}, apperr.Validation("invalid type")
		}
		if body.TransactionDate.IsZero() {
			return models.Transaction{}, apperr.Validation("transaction_date is required")
		}
		// The referenced wallet must belong to the caller; attaching a
		// transaction to someone else's wallet reads as a missing wallet.
		if _, err := scope.Wallet(ctx, s, body.WalletID, userID); err != nil {
			return models.Transaction{}, err
		}
		tags := body.Tags
		if tags == nil {
			tags = []string{}
		}
		return s.CreateTransaction(ctx, models.Transaction{
			WalletID:        body.WalletID,
			Type:            body.Type,
			SubcategoryID:   body.SubcategoryID,
			AmountCents:     body.AmountCents,
			Description:     body.Description,
			Tags:            tags,
			TransactionDate: body.TransactionDate,
		})
	},
	get: func(ctx context.Context, s db.Store, userID, id uuid.UUID) (models.Transaction, error) {
		return scope.Transaction(ctx, s, id, userID)
	},
	update: func(ctx context.Context, s db.Store, userID, id uuid.UUID, body transactionUpdateRequest) (models.Transaction, error) {
		tx, err := scope.Transaction(ctx, s, id, userID)
		if err != nil {
			return models.Transaction{}, err
		}
		if body.Type != nil {
			if !body.Type.Valid() {
				return models.Transaction{}, apperr.Validation("invalid type")
			}
			tx.Type = *body.Type
		}
		if body.SubcategoryID != nil {
			tx.SubcategoryID = *body.SubcategoryID
		}
		if body.AmountCents != nil {
			tx.AmountCents = *body.AmountCents
		}
		if body.Description != nil {
			tx.Description = body.Description
		}
		if body.Tags != nil {
			tx.Tags = *body.Tags
		}
		if body.TransactionDate != nil {
			tx.TransactionDate = *body.TransactionDate
		}
		return s.UpdateTransaction(ctx, tx)
	},
	remove: func(ctx context.Context, s db.Store, userID, id uuid.UUID) error {
		if _, err := scope.Transaction(ctx, s, id, userID); err != nil {
			return err
		}
		return s.DeleteTransaction(ctx, id)
	},
}

func ListTransactions(store db.Store) http.HandlerFunc { return transactionResource.List(store) }
func CreateTransaction(store db.Store) http.HandlerFunc { return transactionResource.Create(store) }
func GetTransaction(store db.Store) http.HandlerFunc { return transactionResource.Get(store) }
func UpdateTransaction(store db.Store) http.HandlerFunc { return transactionResource.Update(store) }
func DeleteTransaction(store db.Store) http.HandlerFunc { return transactionResource.Delete(store) }
