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

type subcategoryCreateRequest struct {
	TransactionType models.TransactionType `json:"transaction_type"`
	Name            string                 `json:"name"`
}

// Only the name is mutable; the type bucket is fixed at creation.
type subcategoryUpdateRequest struct {
	Name string `json:"name"`
}

var subcategoryResource = resource[models.Subcategory, subcategoryCreateRequest, subcategoryUpdateRequest]{
	name: "subcategory",
	list: func(ctx context.Context, s db.Store, userID uuid.UUID, q url.Values) ([]models.Subcategory, error) {
		typ, err := queryType(q, "type")
		if err != nil {
			return nil, err
		}
		return s.ListSubcategories(ctx, userID, typ)
	},
	create: func(ctx context.Context, s db.Store, userID uuid.UUID, body subcategoryCreateRequest) (models.Subcategory, error) {
		if !body.TransactionType.Valid() {
			return models.Subcategory{}, apperr.Validation("invalid transaction_type")
		}
		if err := validateName(body.Name, "name", 255); err != nil {
			return models.Subcategory{}, err
		}
		return s.CreateSubcategory(ctx, models.Subcategory{
			TransactionType: body.TransactionType,
			Name:            body.Name,
			IsSystem:        false,
			UserID:          &userID,
		})
	},
	update: func(ctx context.Context, s db.Store, userID, id uuid.UUID, body subcategoryUpdateRequest) (models.Subcategory, error) {
		if _, err := scope.OwnSubcategory(ctx, s, id, userID); err != nil {
			return models.Subcategory{}, err
		}
		if err := validateName(body.Name, "name", 255); err != nil {
			return models.Subcategory{}, err
		}
		return s.UpdateSubcategoryName(ctx, id, body.Name)
	},
	remove: func(ctx context.Context, s db.Store, userID, id uuid.UUID) error {
		if _, err := scope.OwnSubcategory(ctx, s, id, userID); err != nil {
			return err
		}
		return s.DeleteSubcategory(ctx, id)
	},
}

func ListSubcategories(store db.Store) http.HandlerFunc { return subcategoryResource.List(store) }
func CreateSubcategory(store db.Store) http.HandlerFunc { return subcategoryResource.Create(store) }
func UpdateSubcategory(store db.Store) http.HandlerFunc { return subcategoryResource.Update(store) }
func DeleteSubcategory(store db.Store) http.HandlerFunc { return subcategoryResource.Delete(store) }
