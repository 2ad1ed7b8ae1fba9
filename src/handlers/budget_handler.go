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

type budgetCreateRequest struct {
	SubcategoryID uuid.UUID   `json:"subcategory_id"`
	LimitCents    int64       `json:"limit_cents"`
	PeriodStart   models.Date `json:"period_start"`
	PeriodEnd     models.Date `json:"period_end"`
}

type budgetUpdateRequest struct {
	SubcategoryID *uuid.UUID   `json:"subcategory_id"`
	LimitCents    *int64       `json:"limit_cents"`
	PeriodStart   *models.Date `json:"period_start"`
	PeriodEnd     *models.Date `json:"period_end"`
}

func periodListFilter(q url.Values) (db.PeriodFilter, error) {
	var f db.PeriodFilter
	var err error
	if f.PeriodStart, err = queryDate(q, "period_start"); err != nil {
		return f, err
	}
	if f.PeriodEnd, err = queryDate(q, "period_end"); err != nil {
		return f, err
	}
	return f, nil
}

// applyPeriodUpdate merges optional period bounds onto the stored pair. When
// only one bound is supplied, the check runs against the stored value of the
// other, so a partial update cannot invert the period.
func applyPeriodUpdate(start, end *models.Date, curStart, curEnd models.Date) (models.Date, models.Date, error) {
	newStart, newEnd := curStart, curEnd
	if start != nil {
		newStart = *start
	}
	if end != nil {
		newEnd = *end
	}
	if err := validatePeriod(newStart, newEnd); err != nil {
		return models.Date{}, models.Date{}, err
	}
	return newStart, newEnd, nil
}

var budgetResource = resource[models.Budget, budgetCreateRequest, budgetUpdateRequest]{
	name: "budget",
	list: func(ctx context.Context, s db.Store, userID uuid.UUID, q url.Values) ([]models.Budget, error) {
		f, err := periodListFilter(q)
		if err != nil {
			return nil, err
		}
		return s.ListBudgets(ctx, userID, f)
	},
	create: func(ctx context.Context, s db.Store, userID uuid.UUID, body budgetCreateRequest) (models.Budget, error) {
		if body.PeriodStart.IsZero() || body.PeriodEnd.IsZero() {
			return models.Budget{}, apperr.Validation("period_start and period_end are required")
		}
		if err := validatePeriod(body.PeriodStart, body.PeriodEnd); err != nil {
			return models.Budget{}, err
		}
		return s.CreateBudget(ctx, models.Budget{
			UserID:        userID,
			SubcategoryID: body.SubcategoryID,
			LimitCents:    body.LimitCents,
			PeriodStart:   body.PeriodStart,
			PeriodEnd:     body.PeriodEnd,
		})
	},
	get: func(ctx context.Context, s db.Store, userID, id uuid.UUID) (models.Budget, error) {
		return scope.Budget(ctx, s, id, userID)
	},
	update: func(ctx context.Context, s db.Store, userID, id uuid.UUID, body budgetUpdateRequest) (models.Budget, error) {
		b, err := scope.Budget(ctx, s, id, userID)
		if err != nil {
			return models.Budget{}, err
		}
		if body.SubcategoryID != nil {
			b.SubcategoryID = *body.SubcategoryID
		}
		if body.LimitCents != nil {
			b.LimitCents = *body.LimitCents
		}
		if b.PeriodStart, b.PeriodEnd, err = applyPeriodUpdate(body.PeriodStart, body.PeriodEnd, b.PeriodStart, b.PeriodEnd); err != nil {
			return models.Budget{}, err
		}
		return s.UpdateBudget(ctx, b)
	},
	remove: func(ctx context.Context, s db.Store, userID, id uuid.UUID) error {
		if _, err := scope.Budget(ctx, s, id, userID); err != nil {
			return err
		}
		return s.DeleteBudget(ctx, id)
	},
}

func ListBudgets(store db.Store) http.HandlerFunc { return budgetResource.List(store) }
func CreateBudget(store db.Store) http.HandlerFunc { return budgetResource.Create(store) }
func GetBudget(store db.Store) http.HandlerFunc { return budgetResource.Get(store) }
func UpdateBudget(store db.Store) http.HandlerFunc { return budgetResource.Update(store) }
func DeleteBudget(store db.Store) http.HandlerFunc { return budgetResource.Delete(store) }
