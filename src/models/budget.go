package models

import (
	"time"

	"github.com/google/uuid"
)

type Budget struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	SubcategoryID uuid.UUID `json:"subcategory_id"`
	LimitCents    int64     `json:"limit_cents"`
	PeriodStart   Date      `json:"period_start"`
	PeriodEnd     Date      `json:"period_end"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b Budget) Owner() (uuid.UUID, bool) {
	return b.UserID, true
}
