package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"dalla-server/src/apperr"
	"dalla-server/src/models"

	"github.com/google/uuid"
)

// Memory implements Store with in-memory maps. It backs the test suite and
// mirrors the Postgres behavior, including the wallet → transaction cascade
// and the subcategory uniqueness rule.
type Memory struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *memoryData
}

type memoryData struct {
	users         map[uuid.UUID]models.User
	wallets       map[uuid.UUID]models.Wallet
	subcategories map[uuid.UUID]models.Subcategory
	transactions  map[uuid.UUID]models.Transaction
	budgets       map[uuid.UUID]models.Budget
	goals         map[uuid.UUID]models.Goal
	seq           map[uuid.UUID]uint64
	nextSeq       uint64
}

func NewMemory() *Memory {
	return &Memory{data: &memoryData{
		users:         make(map[uuid.UUID]models.User),
		wallets:       make(map[uuid.UUID]models.Wallet),
		subcategories: make(map[uuid.UUID]models.Subcategory),
		transactions:  make(map[uuid.UUID]models.Transaction),
		budgets:       make(map[uuid.UUID]models.Budget),
		goals:         make(map[uuid.UUID]models.Goal),
		seq:           make(map[uuid.UUID]uint64),
	}}
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		users:         make(map[uuid.UUID]models.User, len(d.users)),
		wallets:       make(map[uuid.UUID]models.Wallet, len(d.wallets)),
		subcategories: make(map[uuid.UUID]models.Subcategory, len(d.subcategories)),
		transactions:  make(map[uuid.UUID]models.Transaction, len(d.transactions)),
		budgets:       make(map[uuid.UUID]models.Budget, len(d.budgets)),
		goals:         make(map[uuid.UUID]models.Goal, len(d.goals)),
		seq:           make(map[uuid.UUID]uint64, len(d.seq)),
		nextSeq:       d.nextSeq,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.wallets {
		c.wallets[k] = v
	}
	for k, v := range d.subcategories {
		c.subcategories[k] = v
	}
	for k, v := range d.transactions {
		v.Tags = append([]string(nil), v.Tags...)
		c.transactions[k] = v
	}
	for k, v := range d.budgets {
		c.budgets[k] = v
	}
	for k, v := range d.goals {
		c.goals[k] = v
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

// RunInTx serializes writers and restores the pre-transaction snapshot when fn
// fails or panics, so a failed request persists nothing.
func (m *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.data.clone()
	m.mu.Unlock()

	committed := false
	defer func() {
		if !committed {
			m.mu.Lock()
			m.data = snapshot
			m.mu.Unlock()
		}
	}()

	if err := fn(ctx, m); err != nil {
		return err
	}
	committed = true
	return nil
}

func (m *Memory) stamp(id uuid.UUID) {
	m.data.nextSeq++
	m.data.seq[id] = m.data.nextSeq
}

// --- users ---

func (m *Memory) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.data.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user")
	}
	return u, nil
}

func (m *Memory) GetUserBySub(ctx context.Context, sub string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.data.users {
		if u.CognitoSub == sub {
			return u, nil
		}
	}
	return models.User{}, apperr.NotFound("user")
}

func (m *Memory) CreateUser(ctx context.Context, sub string, email *string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{
		ID:         uuid.New(),
		CognitoSub: sub,
		Email:      email,
		CreatedAt:  time.Now().UTC(),
	}
	m.data.users[u.ID] = u
	m.stamp(u.ID)
	return u, nil
}

func (m *Memory) UpdateUserEmail(ctx context.Context, id uuid.UUID, email *string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.data.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user")
	}
	u.Email = email
	m.data.users[id] = u
	return u, nil
}

// --- wallets ---

func (m *Memory) CreateWallet(ctx context.Context, userID uuid.UUID, name string) (models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := models.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	m.data.wallets[w.ID] = w
	m.stamp(w.ID)
	return w, nil
}

func (m *Memory) GetWallet(ctx context.Context, id uuid.UUID) (models.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.data.wallets[id]
	if !ok {
		return models.Wallet{}, apperr.NotFound("wallet")
	}
	return w, nil
}

func (m *Memory) ListWallets(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []models.Wallet
	for _, w := range m.data.wallets {
		if w.UserID == userID {
			wallets = append(wallets, w)
		}
	}
	sortNewestFirst(wallets, m.data.seq, func(w models.Wallet) (time.Time, uuid.UUID) { return w.CreatedAt, w.ID })
	return wallets, nil
}

func (m *Memory) UpdateWallet(ctx context.Context, id uuid.UUID, name string) (models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.data.wallets[id]
	if !ok {
		return models.Wallet{}, apperr.NotFound("wallet")
	}
	w.Name = name
	m.data.wallets[id] = w
	return w, nil
}

func (m *Memory) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.wallets[id]; !ok {
		return apperr.NotFound("wallet")
	}
	delete(m.data.wallets, id)
	// wallet_id FK cascade
	for txID, tx := range m.data.transactions {
		if tx.WalletID == id {
			delete(m.data.transactions, txID)
		}
	}
	return nil
}

// --- subcategories ---

func (m *Memory) CreateSubcategory(ctx context.Context, sub models.Subcategory) (models.Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subcategoryExists(sub.TransactionType, sub.Name, sub.UserID, uuid.Nil) {
		return models.Subcategory{}, apperr.Validation("subcategory already exists")
	}
	sub.ID = uuid.New()
	m.data.subcategories[sub.ID] = sub
	m.stamp(sub.ID)
	return sub, nil
}

func (m *Memory) subcategoryExists(typ models.TransactionType, name string, owner *uuid.UUID, exclude uuid.UUID) bool {
	for _, s := range m.data.subcategories {
		if s.ID == exclude || s.TransactionType != typ || s.Name != name {
			continue
		}
		if (s.UserID == nil) != (owner == nil) {
			continue
		}
		if s.UserID == nil || *s.UserID == *owner {
			return true
		}
	}
	return false
}

func (m *Memory) GetSubcategory(ctx context.Context, id uuid.UUID) (models.Subcategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data.subcategories[id]
	if !ok {
		return models.Subcategory{}, apperr.NotFound("subcategory")
	}
	return s, nil
}

func (m *Memory) ListSubcategories(ctx context.Context, userID uuid.UUID, typ *models.TransactionType) ([]models.Subcategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var subs []models.Subcategory
	for _, s := range m.data.subcategories {
		if s.UserID != nil && *s.UserID != userID {
			continue
		}
		if typ != nil && s.TransactionType != *typ {
			continue
		}
		subs = append(subs, s)
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].TransactionType != subs[j].TransactionType {
			return subs[i].TransactionType < subs[j].TransactionType
		}
		if subs[i].Name != subs[j].Name {
			return subs[i].Name < subs[j].Name
		}
		return subs[i].ID.String() < subs[j].ID.String()
	})
	return subs, nil
}

func (m *Memory) FindSystemSubcategory(ctx context.Context, typ models.TransactionType, name string) (models.Subcategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.data.subcategories {
		if s.UserID == nil && s.TransactionType == typ && s.Name == name {
			return s, nil
		}
	}
	return models.Subcategory{}, apperr.NotFound("subcategory")
}

func (m *Memory) UpdateSubcategoryName(ctx context.Context, id uuid.UUID, name string) (models.Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data.subcategories[id]
	if !ok {
		return models.Subcategory{}, apperr.NotFound("subcategory")
	}
	if m.subcategoryExists(s.TransactionType, name, s.UserID, id) {
		return models.Subcategory{}, apperr.Validation("subcategory already exists")
	}
	s.Name = name
	m.data.subcategories[id] = s
	return s, nil
}

func (m *Memory) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.subcategories[id]; !ok {
		return apperr.NotFound("subcategory")
	}
	delete(m.data.subcategories, id)
	return nil
}

// --- transactions ---

func (m *Memory) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now().UTC()
	tx.Tags = append([]string(nil), tx.Tags...)
	if tx.Tags == nil {
		tx.Tags = []string{}
	}
	m.data.transactions[tx.ID] = tx
	m.stamp(tx.ID)
	return tx, nil
}

func (m *Memory) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.data.transactions[id]
	if !ok {
		return models.Transaction{}, apperr.NotFound("transaction")
	}
	tx.Tags = append([]string(nil), tx.Tags...)
	return tx, nil
}

func (m *Memory) ListTransactions(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txs []models.Transaction
	for _, tx := range m.data.transactions {
		w, ok := m.data.wallets[tx.WalletID]
		if !ok || w.UserID != userID {
			continue
		}
		if f.WalletID != nil && tx.WalletID != *f.WalletID {
			continue
		}
		if f.Type != nil && tx.Type != *f.Type {
			continue
		}
		if f.DateFrom != nil && tx.TransactionDate.Time.Before(f.DateFrom.Time) {
			continue
		}
		if f.DateTo != nil && tx.TransactionDate.Time.After(f.DateTo.Time) {
			continue
		}
		tx.Tags = append([]string(nil), tx.Tags...)
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if !a.TransactionDate.Time.Equal(b.TransactionDate.Time) {
			return a.TransactionDate.Time.After(b.TransactionDate.Time)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return m.data.seq[a.ID] > m.data.seq[b.ID]
	})
	return txs, nil
}

func (m *Memory) UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.data.transactions[tx.ID]
	if !ok {
		return models.Transaction{}, apperr.NotFound("transaction")
	}
	tx.WalletID = existing.WalletID
	tx.CreatedAt = existing.CreatedAt
	tx.Tags = append([]string(nil), tx.Tags...)
	m.data.transactions[tx.ID] = tx
	return tx, nil
}

func (m *Memory) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.transactions[id]; !ok {
		return apperr.NotFound("transaction")
	}
	delete(m.data.transactions, id)
	return nil
}

// --- budgets ---

func (m *Memory) CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	m.data.budgets[b.ID] = b
	m.stamp(b.ID)
	return b, nil
}

func (m *Memory) GetBudget(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data.budgets[id]
	if !ok {
		return models.Budget{}, apperr.NotFound("budget")
	}
	return b, nil
}

func (m *Memory) ListBudgets(ctx context.Context, userID uuid.UUID, f PeriodFilter) ([]models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var budgets []models.Budget
	for _, b := range m.data.budgets {
		if b.UserID != userID {
			continue
		}
		if f.PeriodStart != nil && b.PeriodEnd.Time.Before(f.PeriodStart.Time) {
			continue
		}
		if f.PeriodEnd != nil && b.PeriodStart.Time.After(f.PeriodEnd.Time) {
			continue
		}
		budgets = append(budgets, b)
	}
	sortNewestFirst(budgets, m.data.seq, func(b models.Budget) (time.Time, uuid.UUID) { return b.CreatedAt, b.ID })
	return budgets, nil
}

func (m *Memory) UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.data.budgets[b.ID]
	if !ok {
		return models.Budget{}, apperr.NotFound("budget")
	}
	b.UserID = existing.UserID
	b.CreatedAt = existing.CreatedAt
	m.data.budgets[b.ID] = b
	return b, nil
}

func (m *Memory) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.budgets[id]; !ok {
		return apperr.NotFound("budget")
	}
	delete(m.data.budgets, id)
	return nil
}

// --- goals ---

func (m *Memory) CreateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = uuid.New()
	g.CreatedAt = time.Now().UTC()
	m.data.goals[g.ID] = g
	m.stamp(g.ID)
	return g, nil
}

func (m *Memory) GetGoal(ctx context.Context, id uuid.UUID) (models.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.data.goals[id]
	if !ok {
		return models.Goal{}, apperr.NotFound("goal")
	}
	return g, nil
}

func (m *Memory) ListGoals(ctx context.Context, userID uuid.UUID, f PeriodFilter) ([]models.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var goals []models.Goal
	for _, g := range m.data.goals {
		if g.UserID != userID {
			continue
		}
		if f.PeriodStart != nil && g.PeriodEnd.Time.Before(f.PeriodStart.Time) {
			continue
		}
		if f.PeriodEnd != nil && g.PeriodStart.Time.After(f.PeriodEnd.Time) {
			continue
		}
		goals = append(goals, g)
	}
	sortNewestFirst(goals, m.data.seq, func(g models.Goal) (time.Time, uuid.UUID) { return g.CreatedAt, g.ID })
	return goals, nil
}

func (m *Memory) UpdateGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.data.goals[g.ID]
	if !ok {
		return models.Goal{}, apperr.NotFound("goal")
	}
	g.UserID = existing.UserID
	g.CreatedAt = existing.CreatedAt
	m.data.goals[g.ID] = g
	return g, nil
}

func (m *Memory) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.goals[id]; !ok {
		return apperr.NotFound("goal")
	}
	delete(m.data.goals, id)
	return nil
}

func sortNewestFirst[T any](items []T, seq map[uuid.UUID]uint64, key func(T) (time.Time, uuid.UUID)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return seq[idi] > seq[idj]
	})
}
