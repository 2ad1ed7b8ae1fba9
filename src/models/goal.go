package models

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Title       string          `json:"title"`
	TargetCents int64           `json:"target_cents"`
	GoalType    TransactionType `json:"goal_type"`
	PeriodStart Date            `json:"period_start"`
	PeriodEnd   Date            `json:"period_end"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (g Goal) Owner() (uuid.UUID, bool) {
	return g.UserID, true
}
