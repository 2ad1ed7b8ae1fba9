package scope

import (
	"context"
	"errors"
	"testing"

	"dalla-server/src/apperr"
	"dalla-server/src/db"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func TestRequire(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	wallet := models.Wallet{ID: uuid.New(), UserID: owner, Name: "Main"}
	system := models.Subcategory{ID: uuid.New(), TransactionType: models.TypeExpense, Name: "Food", IsSystem: true}

	if _, err := Require(wallet, nil, owner); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := Require(wallet, nil, stranger); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("stranger lookup: got %v, want %v", err, apperr.ErrNotFound)
	}
	if _, err := Require(system, nil, owner); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("system record: got %v, want %v", err, apperr.ErrNotFound)
	}

	// store errors pass through untouched
	storeErr := apperr.NotFound("wallet")
	if _, err := Require(wallet, storeErr, owner); !errors.Is(err, storeErr) {
		t.Fatalf("store error: got %v, want %v", err, storeErr)
	}
}

func TestRequireVisible(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	owned := models.Subcategory{ID: uuid.New(), TransactionType: models.TypeExpense, Name: "Coffee", UserID: &owner}
	system := models.Subcategory{ID: uuid.New(), TransactionType: models.TypeExpense, Name: "Food", IsSystem: true}

	if _, err := RequireVisible(system, nil, stranger); err != nil {
		t.Fatalf("system record should be visible to anyone: %v", err)
	}
	if _, err := RequireVisible(owned, nil, owner); err != nil {
		t.Fatalf("owner should see own record: %v", err)
	}
	if _, err := RequireVisible(owned, nil, stranger); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("stranger lookup: got %v, want %v", err, apperr.ErrNotFound)
	}
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemory()

	alice, err := store.CreateUser(ctx, "sub-alice", nil)
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	bob, err := store.CreateUser(ctx, "sub-bob", nil)
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	wallet, err := store.CreateWallet(ctx, alice.ID, "Main")
	if err != nil {
		t.Fatalf("creating wallet: %v", err)
	}
	tx, err := store.CreateTransaction(ctx, models.Transaction{
		WalletID:        wallet.ID,
		Type:            models.TypeExpense,
		SubcategoryID:   uuid.New(),
		AmountCents:     1250,
		TransactionDate: models.NewDate(2026, 8, 1),
	})
	if err != nil {
		t.Fatalf("creating transaction: %v", err)
	}

	got, err := Transaction(ctx, store, tx.ID, alice.ID)
	if err != nil {
		t.Fatalf("wallet owner lookup failed: %v", err)
	}
	if got.ID != tx.ID {
		t.Errorf("got transaction %s, want %s", got.ID, tx.ID)
	}

	// ownership resolves through the wallet, so bob sees nothing
	if _, err := Transaction(ctx, store, tx.ID, bob.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("non-owner lookup: got %v, want %v", err, apperr.ErrNotFound)
	}
	if _, err := Transaction(ctx, store, uuid.New(), alice.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing id: got %v, want %v", err, apperr.ErrNotFound)
	}
}
