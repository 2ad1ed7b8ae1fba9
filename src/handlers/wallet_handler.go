package handlers

import (
	"context"
	"net/http"
	"net/url"

	"dalla-server/src/db"
	"dalla-server/src/models"
	"dalla-server/src/scope"

	"github.com/google/uuid"
)

type walletCreateRequest struct {
	Name string `json:"name"`
}

type walletUpdateRequest struct {
	Name string `json:"name"`
}

var walletResource = resource[models.Wallet, walletCreateRequest, walletUpdateRequest]{
	name: "wallet",
	list: func(ctx context.Context, s db.Store, userID uuid.UUID, _ url.Values) ([]models.Wallet, error) {
		return s.ListWallets(ctx, userID)
	},
	create: func(ctx context.Context, s db.Store, userID uuid.UUID, body walletCreateRequest) (models.Wallet, error) {
		if err := validateName(body.Name, "name", 255); err != nil {
			return models.Wallet{}, err
		}
		return s.CreateWallet(ctx, userID, body.Name)
	},
	get: func(ctx context.Context, s db.Store, userID, id uuid.UUID) (models.Wallet, error) {
		return scope.Wallet(ctx, s, id, userID)
	},
	update: func(ctx context.Context, s db.Store, userID, id uuid.UUID, body walletUpdateRequest) (models.Wallet, error) {
		if _, err := scope.Wallet(ctx, s, id, userID); err != nil {
			return models.Wallet{}, err
		}
		if err := validateName(body.Name, "name", 255); err != nil {
			return models.Wallet{}, err
		}
		return s.UpdateWallet(ctx, id, body.Name)
	},
	remove: func(ctx context.Context, s db.Store, userID, id uuid.UUID) error {
		if _, err := scope.Wallet(ctx, s, id, userID); err != nil {
			return err
		}
		return s.DeleteWallet(ctx, id)
	},
}

func ListWallets(store db.Store) http.HandlerFunc { return walletResource.List(store) }
func CreateWallet(store db.Store) http.HandlerFunc { return walletResource.Create(store) }
func GetWallet(store db.Store) http.HandlerFunc { return walletResource.Get(store) }
func UpdateWallet(store db.Store) http.HandlerFunc { return walletResource.Update(store) }
func DeleteWallet(store db.Store) http.HandlerFunc { return walletResource.Delete(store) }
