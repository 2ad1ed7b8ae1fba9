package db

import (
	"context"

	"dalla-server/src/models"

	"github.com/google/uuid"
)

// TransactionFilter holds the optional exact-match filters for listing
// transactions. Date bounds are inclusive.
type TransactionFilter struct {
	WalletID *uuid.UUID
	Type     *models.TransactionType
	DateFrom *models.Date
	DateTo   *models.Date
}

// PeriodFilter selects records whose period overlaps the given bounds:
// PeriodStart keeps records with period_end >= it, PeriodEnd keeps records
// with period_start <= it.
type PeriodFilter struct {
	PeriodStart *models.Date
	PeriodEnd   *models.Date
}

// Store is the persistence boundary. Lookups by id are unscoped; ownership
// checks belong to the scope package. Absent records surface as
// apperr.ErrNotFound. Update methods persist the full record, so partial
// updates are applied by the caller on a loaded copy first.
type Store interface {
	// RunInTx runs fn inside one transactional unit of work. fn receives a
	// store bound to that transaction; a non-nil error rolls everything back.
	RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error

	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserBySub(ctx context.Context, sub string) (models.User, error)
	CreateUser(ctx context.Context, sub string, email *string) (models.User, error)
	UpdateUserEmail(ctx context.Context, id uuid.UUID, email *string) (models.User, error)

	CreateWallet(ctx context.Context, userID uuid.UUID, name string) (models.Wallet, error)
	GetWallet(ctx context.Context, id uuid.UUID) (models.Wallet, error)
	ListWallets(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error)
	UpdateWallet(ctx context.Context, id uuid.UUID, name string) (models.Wallet, error)
	DeleteWallet(ctx context.Context, id uuid.UUID) error

	CreateSubcategory(ctx context.Context, sub models.Subcategory) (models.Subcategory, error)
	GetSubcategory(ctx context.Context, id uuid.UUID) (models.Subcategory, error)
	ListSubcategories(ctx context.Context, userID uuid.UUID, typ *models.TransactionType) ([]models.Subcategory, error)
	FindSystemSubcategory(ctx context.Context, typ models.TransactionType, name string) (models.Subcategory, error)
	UpdateSubcategoryName(ctx context.Context, id uuid.UUID, name string) (models.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error

	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error)
	GetBudget(ctx context.Context, id uuid.UUID) (models.Budget, error)
	ListBudgets(ctx context.Context, userID uuid.UUID, f PeriodFilter) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error)
	GetGoal(ctx context.Context, id uuid.UUID) (models.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID, f PeriodFilter) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, g models.Goal) (models.Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
}

type storeKey struct{}

// WithStore attaches a (typically transaction-bound) store to the context.
func WithStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// RequestStore returns the store attached to the request context, falling back
// to the given base store when no transaction middleware is mounted.
func RequestStore(ctx context.Context, fallback Store) Store {
	if s, ok := ctx.Value(storeKey{}).(Store); ok {
		return s
	}
	return fallback
}
