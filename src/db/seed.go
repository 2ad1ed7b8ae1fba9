package db

import (
	"context"
	"errors"

	"dalla-server/src/apperr"
	"dalla-server/src/models"
)

// DefaultSubcategories is the platform catalog seeded at boot with no owner.
var DefaultSubcategories = []struct {
	Type models.TransactionType
	Name string
}{
	{models.TypeIncome, "Salary"},
	{models.TypeIncome, "Freelance"},
	{models.TypeIncome, "Other"},
	{models.TypeExpense, "Food"},
	{models.TypeExpense, "Transport"},
	{models.TypeExpense, "Utilities"},
	{models.TypeExpense, "Shopping"},
	{models.TypeExpense, "Other"},
	{models.TypeInvestment, "Stocks"},
	{models.TypeInvestment, "Savings"},
	{models.TypeInvestment, "Other"},
	{models.TypeDonation, "Charity"},
	{models.TypeDonation, "Other"},
}

// SeedDefaultSubcategories inserts any missing catalog entries. Safe to run on
// every boot.
func SeedDefaultSubcategories(ctx context.Context, s Store) error {
	return s.RunInTx(ctx, func(ctx context.Context, s Store) error {
		for _, entry := range DefaultSubcategories {
			_, err := s.FindSystemSubcategory(ctx, entry.Type, entry.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			_, err = s.CreateSubcategory(ctx, models.Subcategory{
				TransactionType: entry.Type,
				Name:            entry.Name,
				IsSystem:        true,
				UserID:          nil,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
