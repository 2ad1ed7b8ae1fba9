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

type goalCreateRequest struct {
	Title       string                 `json:"title"`
	TargetCents int64                  `json:"target_cents"`
	GoalType    models.TransactionType `json:"goal_type"`
	PeriodStart models.Date            `json:"period_start"`
	PeriodEnd   models.Date            `json:"period_end"`
}

type goalUpdateRequest struct {
	Title       *string                 `json:"title"`
	TargetCents *int64                  `json:"target_cents"`
	GoalType    *models.TransactionType `json:"goal_type"`
	PeriodStart *models.Date            `json:"period_start"`
	PeriodEnd   *models.Date            `json:"period_end"`
}

var goalResource = resource[models.Goal, goalCreateRequest, goalUpdateRequest]{
	name: "goal",
	list: func(ctx context.Context, s db.Store, userID uuid.UUID, q url.Values) ([]models.Goal, error) {
		f, err := periodListFilter(q)
		if err != nil {
			return nil, err
		}
		return s.ListGoals(ctx, userID, f)
	},
	create: func(ctx context.Context, s db.Store, userID uuid.UUID, body goalCreateRequest) (models.Goal, error) {
		if err := validateName(body.Title, "title", 500); err != nil {
			return models.Goal{}, err
		}
		if !body.GoalType.Valid() {
			return models.Goal{}, apperr.Validation("invalid goal_type")
		}
		if body.PeriodStart.IsZero() || body.PeriodEnd.IsZero() {
			return models.Goal{}, apperr.Validation("period_start and period_end are required")
		}
		if err := validatePeriod(body.PeriodStart, body.PeriodEnd); err != nil {
			return models.Goal{}, err
		}
		return s.CreateGoal(ctx, models.Goal{
			UserID:      userID,
			Title:       body.Title,
			TargetCents: body.TargetCents,
			GoalType:    body.GoalType,
			PeriodStart: body.PeriodStart,
			PeriodEnd:   body.PeriodEnd,
		})
	},
	get: func(ctx context.Context, s db.Store, userID, id uuid.UUID) (models.Goal, error) {
		return scope.Goal(ctx, s, id, userID)
	},
	update: func(ctx context.Context, s db.Store, userID, id uuid.UUID, body goalUpdateRequest) (models.Goal, error) {
		g, err := scope.Goal(ctx, s, id, userID)
		if err != nil {
			return models.Goal{}, err
		}
		if body.Title != nil {
			if err := validateName(*body.Title, "title", 500); err != nil {
				return models.Goal{}, err
			}
			g.Title = *body.Title
		}
		if body.TargetCents != nil {
			g.TargetCents = *body.TargetCents
		}
		if body.GoalType != nil {
			if !body.GoalType.Valid() {
				return models.Goal{}, apperr.Validation("invalid goal_type")
			}
			g.GoalType = *body.GoalType
		}
		if g.PeriodStart, g.PeriodEnd, err = applyPeriodUpdate(body.PeriodStart, body.PeriodEnd, g.PeriodStart, g.PeriodEnd); err != nil {
			return models.Goal{}, err
		}
		return s.UpdateGoal(ctx, g)
	},
	remove: func(ctx context.Context, s db.Store, userID, id uuid.UUID) error {
		if _, err := scope.Goal(ctx, s, id, userID); err != nil {
			return err
		}
		return s.DeleteGoal(ctx, id)
	},
}

func ListGoals(store db.Store) http.HandlerFunc { return goalResource.List(store) }
func CreateGoal(store db.Store) http.HandlerFunc { return goalResource.Create(store) }
func GetGoal(store db.Store) http.HandlerFunc { return goalResource.Get(store) }
func UpdateGoal(store db.Store) http.HandlerFunc { return goalResource.Update(store) }
func DeleteGoal(store db.Store) http.HandlerFunc { return goalResource.Delete(store) }
