// Package scope is the ownership guard. Every read or write of a financial
// record passes through one of its lookups, and a scope miss is reported as
// the same not-found failure as a missing record, so the existence of other
// users' data never leaks.
package scope

import (
	"context"

	"dalla-server/src/apperr"
	"dalla-server/src/db"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

// Owned is any record with an owner slot. The bool is false for system-owned
// records (no owner).
type Owned interface {
	Owner() (uuid.UUID, bool)
}

// Require passes the record through only when it is owned by userID. It is
// chained directly onto a store lookup, so a store miss and a scope miss
// surface identically.
func Require[T Owned](rec T, err error, userID uuid.UUID) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	owner, ok := rec.Owner()
	if !ok || owner != userID {
		return zero, apperr.NotFound("record")
	}
	return rec, nil
}

// RequireVisible additionally admits system records (no owner). Used for
// subcategory reads; mutation still goes through Require.
func RequireVisible[T Owned](rec T, err error, userID uuid.UUID) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	owner, ok := rec.Owner()
	if ok && owner != userID {
		return zero, apperr.NotFound("record")
	}
	return rec, nil
}

// Wallet returns the wallet when it belongs to userID.
func Wallet(ctx context.Context, s db.Store, id, userID uuid.UUID) (models.Wallet, error) {
	w, err := s.GetWallet(ctx, id)
	return Require(w, err, userID)
}

// Budget returns the budget when it belongs to userID.
func Budget(ctx context.Context, s db.Store, id, userID uuid.UUID) (models.Budget, error) {
	b, err := s.GetBudget(ctx, id)
	return Require(b, err, userID)
}

// Goal returns the goal when it belongs to userID.
func Goal(ctx context.Context, s db.Store, id, userID uuid.UUID) (models.Goal, error) {
	g, err := s.GetGoal(ctx, id)
	return Require(g, err, userID)
}

// OwnSubcategory returns the subcategory only when userID created it. System
// subcategories fail here: they are visible to everyone but mutable by no one.
func OwnSubcategory(ctx context.Context, s db.Store, id, userID uuid.UUID) (models.Subcategory, error) {
	sub, err := s.GetSubcategory(ctx, id)
	return Require(sub, err, userID)
}

// Transaction resolves ownership transitively: the transaction is loaded, then
// its wallet, and the wallet's owner decides. No ownership data is duplicated
// on the transaction itself.
func Transaction(ctx context.Context, s db.Store, id, userID uuid.UUID) (models.Transaction, error) {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if _, err := Wallet(ctx, s, tx.WalletID, userID); err != nil {
		return models.Transaction{}, apperr.NotFound("transaction")
	}
	return tx, nil
}
