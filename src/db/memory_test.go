package db

import (
	"context"
	"errors"
	"testing"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

func mustUser(t *testing.T, m *Memory, sub string) models.User {
	t.Helper()
	u, err := m.CreateUser(context.Background(), sub, nil)
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

func mustWallet(t *testing.T, m *Memory, userID uuid.UUID, name string) models.Wallet {
	t.Helper()
	w, err := m.CreateWallet(context.Background(), userID, name)
	if err != nil {
		t.Fatalf("creating wallet: %v", err)
	}
	return w
}

func mustTransaction(t *testing.T, m *Memory, tx models.Transaction) models.Transaction {
	t.Helper()
	created, err := m.CreateTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("creating transaction: %v", err)
	}
	return created
}

func TestDeleteWalletCascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	user := mustUser(t, m, "sub-1")
	wallet := mustWallet(t, m, user.ID, "Main")
	other := mustWallet(t, m, user.ID, "Savings")

	gone := mustTransaction(t, m, models.Transaction{
		WalletID: wallet.ID, Type: models.TypeExpense,
		SubcategoryID: uuid.New(), AmountCents: 100,
		TransactionDate: models.NewDate(2026, 8, 1),
	})
	kept := mustTransaction(t, m, models.Transaction{
		WalletID: other.ID, Type: models.TypeExpense,
		SubcategoryID: uuid.New(), AmountCents: 200,
		TransactionDate: models.NewDate(2026, 8, 2),
	})

	if err := m.DeleteWallet(ctx, wallet.ID); err != nil {
		t.Fatalf("deleting wallet: %v", err)
	}
	if _, err := m.GetTransaction(ctx, gone.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cascaded transaction: got %v, want %v", err, apperr.ErrNotFound)
	}
	if _, err := m.GetTransaction(ctx, kept.ID); err != nil {
		t.Errorf("transaction in surviving wallet should remain: %v", err)
	}
}

func TestSubcategoryUniqueness(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	alice := mustUser(t, m, "sub-alice")
	bob := mustUser(t, m, "sub-bob")

	system, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeExpense, Name: "Food", IsSystem: true,
	})
	if err != nil {
		t.Fatalf("creating system subcategory: %v", err)
	}

	// a second system entry with the same pair collides
	if _, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeExpense, Name: "Food", IsSystem: true,
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("system duplicate: got %v, want %v", err, apperr.ErrValidation)
	}

	// uniqueness is per owner scope: alice may shadow the system name
	mine, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeExpense, Name: "Food", UserID: &alice.ID,
	})
	if err != nil {
		t.Fatalf("owned entry with system name: %v", err)
	}
	if _, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeExpense, Name: "Food", UserID: &alice.ID,
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("owned duplicate: got %v, want %v", err, apperr.ErrValidation)
	}
	if _, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeExpense, Name: "Food", UserID: &bob.ID,
	}); err != nil {
		t.Fatalf("same name under another owner: %v", err)
	}

	// a different type bucket does not collide
	if _, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeIncome, Name: "Food", UserID: &alice.ID,
	}); err != nil {
		t.Fatalf("same name under another type: %v", err)
	}

	// renaming into an existing pair collides too
	extra, err := m.CreateSubcategory(ctx, models.Subcategory{
		TransactionType: models.TypeExpense, Name: "Coffee", UserID: &alice.ID,
	})
	if err != nil {
		t.Fatalf("creating subcategory: %v", err)
	}
	if _, err := m.UpdateSubcategoryName(ctx, extra.ID, "Food"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("rename onto duplicate: got %v, want %v", err, apperr.ErrValidation)
	}
	if _, err := m.UpdateSubcategoryName(ctx, mine.ID, "Groceries"); err != nil {
		t.Fatalf("rename to free name: %v", err)
	}
	if _, err := m.GetSubcategory(ctx, system.ID); err != nil {
		t.Fatalf("system entry should survive: %v", err)
	}
}

func TestSeedDefaultSubcategoriesIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for i := 0; i < 2; i++ {
		if err := SeedDefaultSubcategories(ctx, m); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	subs, err := m.ListSubcategories(ctx, uuid.New(), nil)
	if err != nil {
		t.Fatalf("listing subcategories: %v", err)
	}
	if len(subs) != len(DefaultSubcategories) {
		t.Fatalf("got %d subcategories, want %d", len(subs), len(DefaultSubcategories))
	}
	for _, s := range subs {
		if !s.IsSystem || s.UserID != nil {
			t.Errorf("seeded entry %s/%s should be system-owned", s.TransactionType, s.Name)
		}
	}
}

func TestListTransactionsOrderingAndFilters(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	alice := mustUser(t, m, "sub-alice")
	bob := mustUser(t, m, "sub-bob")
	wallet := mustWallet(t, m, alice.ID, "Main")
	second := mustWallet(t, m, alice.ID, "Savings")
	bobWallet := mustWallet(t, m, bob.ID, "Main")

	older := mustTransaction(t, m, models.Transaction{
		WalletID: wallet.ID, Type: models.TypeExpense,
		SubcategoryID: uuid.New(), AmountCents: 100,
		TransactionDate: models.NewDate(2026, 8, 1),
	})
	newer := mustTransaction(t, m, models.Transaction{
		WalletID: second.ID, Type: models.TypeIncome,
		SubcategoryID: uuid.New(), AmountCents: 200,
		TransactionDate: models.NewDate(2026, 8, 15),
	})
	sameDayLater := mustTransaction(t, m, models.Transaction{
		WalletID: wallet.ID, Type: models.TypeExpense,
		SubcategoryID: uuid.New(), AmountCents: 300,
		TransactionDate: models.NewDate(2026, 8, 15),
	})
	mustTransaction(t, m, models.Transaction{
		WalletID: bobWallet.ID, Type: models.TypeExpense,
		SubcategoryID: uuid.New(), AmountCents: 400,
		TransactionDate: models.NewDate(2026, 8, 15),
	})

	all, err := m.ListTransactions(ctx, alice.ID, TransactionFilter{})
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	wantOrder := []uuid.UUID{sameDayLater.ID, newer.ID, older.ID}
	if len(all) != len(wantOrder) {
		t.Fatalf("got %d transactions, want %d", len(all), len(wantOrder))
	}
	for i, want := range wantOrder {
		if all[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, all[i].ID, want)
		}
	}

	income := models.TypeIncome
	byType, err := m.ListTransactions(ctx, alice.ID, TransactionFilter{Type: &income})
	if err != nil {
		t.Fatalf("listing by type: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != newer.ID {
		t.Errorf("type filter: got %v", byType)
	}

	byWallet, err := m.ListTransactions(ctx, alice.ID, TransactionFilter{WalletID: &wallet.ID})
	if err != nil {
		t.Fatalf("listing by wallet: %v", err)
	}
	if len(byWallet) != 2 {
		t.Errorf("wallet filter: got %d transactions, want 2", len(byWallet))
	}

	from := models.NewDate(2026, 8, 10)
	to := models.NewDate(2026, 8, 15)
	byDate, err := m.ListTransactions(ctx, alice.ID, TransactionFilter{DateFrom: &from, DateTo: &to})
	if err != nil {
		t.Fatalf("listing by date: %v", err)
	}
	if len(byDate) != 2 {
		t.Errorf("date filter: got %d transactions, want 2", len(byDate))
	}
}

func TestRunInTxRollback(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	user := mustUser(t, m, "sub-1")
	wallet := mustWallet(t, m, user.ID, "Main")

	boom := errors.New("boom")
	err := m.RunInTx(ctx, func(ctx context.Context, s Store) error {
		if _, err := s.CreateWallet(ctx, user.ID, "Doomed"); err != nil {
			return err
		}
		if err := s.DeleteWallet(ctx, wallet.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}

	wallets, err := m.ListWallets(ctx, user.ID)
	if err != nil {
		t.Fatalf("listing wallets: %v", err)
	}
	if len(wallets) != 1 || wallets[0].ID != wallet.ID {
		t.Fatalf("rollback should restore the original wallet, got %v", wallets)
	}

	// a panic inside the transaction restores the snapshot as well
	func() {
		defer func() { recover() }()
		m.RunInTx(ctx, func(ctx context.Context, s Store) error {
			s.CreateWallet(ctx, user.ID, "Doomed")
			panic("handler blew up")
		})
	}()
	wallets, err = m.ListWallets(ctx, user.ID)
	if err != nil {
		t.Fatalf("listing wallets: %v", err)
	}
	if len(wallets) != 1 {
		t.Fatalf("panic rollback should restore state, got %d wallets", len(wallets))
	}

	// a successful transaction commits
	if err := m.RunInTx(ctx, func(ctx context.Context, s Store) error {
		_, err := s.CreateWallet(ctx, user.ID, "Kept")
		return err
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	wallets, _ = m.ListWallets(ctx, user.ID)
	if len(wallets) != 2 {
		t.Fatalf("commit should persist, got %d wallets", len(wallets))
	}
}
