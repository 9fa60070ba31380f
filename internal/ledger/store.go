// Package ledger owns the authoritative in-memory collection of transactions.
// All mutation goes through the Store; every mutation is written through to
// persistence in full before the call returns.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ymykhal/pocket/internal/model"
)

// Persistence reads and writes the full transaction collection snapshot.
// Load never fails: missing or corrupt data comes back as an empty
// collection. The SQLite store in internal/storage is the production
// implementation; tests inject an in-memory fake.
type Persistence interface {
	Load(ctx context.Context) []model.Transaction
	Save(ctx context.Context, transactions []model.Transaction) error
}

// NewTransaction holds the caller-supplied fields for Add. The ID is always
// generated by the store, never accepted from outside.
type NewTransaction struct {
	Date        string
	Description string
	Amount      float64
	Type        model.TransactionType
	Category    string
}

// Store is the single source of truth for the ledger once constructed. The
// mutex serializes each read-modify-write-persist cycle as one atomic unit,
// so two mutations can never interleave over not-yet-persisted state.
type Store struct {
	mu           sync.Mutex
	persist      Persistence
	transactions []model.Transaction
}

// New loads the persisted collection once and returns the store that owns it
// from here on.
func New(ctx context.Context, p Persistence) *Store {
	transactions := p.Load(ctx)
	slog.Debug("ledger loaded", "transactions", len(transactions))
	return &Store{
		persist:      p,
		transactions: transactions,
	}
}

// Add validates the fields, assigns a fresh unique ID, appends the new
// transaction and writes the full updated collection through to persistence.
// The created record is returned. A blank category defaults to
// model.DefaultCategory.
//
// Input is re-validated here even when the caller already checked it;
// rejected input never reaches persistence.
func (s *Store) Add(ctx context.Context, fields NewTransaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := strings.TrimSpace(fields.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Date:        fields.Date,
		Description: fields.Description,
		Amount:      fields.Amount,
		Type:        fields.Type,
		Category:    category,
	}
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}

	updated := make([]model.Transaction, 0, len(s.transactions)+1)
	updated = append(updated, s.transactions...)
	updated = append(updated, txn)

	if err := s.persist.Save(ctx, updated); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to persist transaction: %w", err)
	}
	s.transactions = updated

	slog.Debug("transaction added",
		"id", txn.ID,
		"type", txn.Type,
		"amount", txn.Amount,
		"category", txn.Category)
	return txn, nil
}

// Remove deletes the transaction with the given ID if present and writes the
// full collection through to persistence. Removing an unknown ID is a no-op,
// not an error; the persistence write still happens, keeping the
// one-write-per-mutation contract observable.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]model.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.ID != id {
			updated = append(updated, t)
		}
	}

	if err := s.persist.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist removal: %w", err)
	}
	removed := len(s.transactions) - len(updated)
	s.transactions = updated

	slog.Debug("transaction removed", "id", id, "removed", removed)
	return nil
}

// Transactions returns a snapshot copy of the collection. Consumers read
// through this and must never mutate store state directly; handing out a
// copy makes that structurally true for the slice itself.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.Transaction, len(s.transactions))
	copy(snapshot, s.transactions)
	return snapshot
}

// Len returns the number of transactions currently in the ledger.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}
