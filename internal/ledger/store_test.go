package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymykhal/pocket/internal/model"
)

// fakePersistence records every saved snapshot so tests can observe the
// write-through behavior without a real database.
type fakePersistence struct {
	initial []model.Transaction
	saves   [][]model.Transaction
	saveErr error
}

func (f *fakePersistence) Load(_ context.Context) []model.Transaction {
	return f.initial
}

func (f *fakePersistence) Save(_ context.Context, transactions []model.Transaction) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	snapshot := make([]model.Transaction, len(transactions))
	copy(snapshot, transactions)
	f.saves = append(f.saves, snapshot)
	return nil
}

func validFields() NewTransaction {
	return NewTransaction{
		Date:        "2024-03-15",
		Description: "Coffee",
		Amount:      4.5,
		Type:        model.TypeExpense,
		Category:    "Food",
	}
}

func TestStore_LoadsOnceAtStartup(t *testing.T) {
	persisted := []model.Transaction{{
		ID:          "existing",
		Date:        "2024-01-01",
		Description: "Rent",
		Amount:      900,
		Type:        model.TypeExpense,
		Category:    "Housing",
	}}

	store := New(context.Background(), &fakePersistence{initial: persisted})

	transactions := store.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, "existing", transactions[0].ID)
}

func TestStore_Add(t *testing.T) {
	persist := &fakePersistence{}
	store := New(context.Background(), persist)

	txn, err := store.Add(context.Background(), validFields())
	require.NoError(t, err)

	assert.NotEmpty(t, txn.ID)
	assert.Equal(t, "2024-03-15", txn.Date)
	assert.Equal(t, "Coffee", txn.Description)
	assert.InDelta(t, 4.5, txn.Amount, 0.001)
	assert.Equal(t, model.TypeExpense, txn.Type)
	assert.Equal(t, "Food", txn.Category)

	// Exactly one full-collection write, containing the new record.
	require.Len(t, persist.saves, 1)
	require.Len(t, persist.saves[0], 1)
	assert.Equal(t, txn, persist.saves[0][0])
}

func TestStore_AddAssignsUniqueIDs(t *testing.T) {
	store := New(context.Background(), &fakePersistence{})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		txn, err := store.Add(context.Background(), validFields())
		require.NoError(t, err)
		assert.False(t, seen[txn.ID], "id %s reused", txn.ID)
		seen[txn.ID] = true
	}
}

func TestStore_AddDefaultsCategory(t *testing.T) {
	store := New(context.Background(), &fakePersistence{})

	fields := validFields()
	fields.Category = "  "
	txn, err := store.Add(context.Background(), fields)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCategory, txn.Category)
}

func TestStore_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NewTransaction)
		wantErr error
	}{
		{
			name:    "empty description",
			mutate:  func(f *NewTransaction) { f.Description = "" },
			wantErr: model.ErrEmptyDescription,
		},
		{
			name:    "negative amount",
			mutate:  func(f *NewTransaction) { f.Amount = -5 },
			wantErr: model.ErrInvalidAmount,
		},
		{
			name:    "bad date",
			mutate:  func(f *NewTransaction) { f.Date = "March 15" },
			wantErr: model.ErrInvalidDate,
		},
		{
			name:    "bad type",
			mutate:  func(f *NewTransaction) { f.Type = "loan" },
			wantErr: model.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persist := &fakePersistence{}
			store := New(context.Background(), persist)

			fields := validFields()
			tt.mutate(&fields)

			_, err := store.Add(context.Background(), fields)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, persist.saves, "rejected input must not reach persistence")
			assert.Zero(t, store.Len())
		})
	}
}

func TestStore_AddRollsBackOnSaveFailure(t *testing.T) {
	persist := &fakePersistence{saveErr: errors.New("disk full")}
	store := New(context.Background(), persist)

	_, err := store.Add(context.Background(), validFields())
	require.Error(t, err)
	assert.Zero(t, store.Len(), "in-memory state must stay consistent with persistence")
}

func TestStore_Remove(t *testing.T) {
	persist := &fakePersistence{}
	store := New(context.Background(), persist)

	first, err := store.Add(context.Background(), validFields())
	require.NoError(t, err)
	second, err := store.Add(context.Background(), validFields())
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), first.ID))

	transactions := store.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, second.ID, transactions[0].ID)

	// Two adds plus one remove: three full-collection writes.
	require.Len(t, persist.saves, 3)
	require.Len(t, persist.saves[2], 1)
	assert.Equal(t, second.ID, persist.saves[2][0].ID)
}

func TestStore_RemoveUnknownIDIsNoOp(t *testing.T) {
	persist := &fakePersistence{}
	store := New(context.Background(), persist)

	txn, err := store.Add(context.Background(), validFields())
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), "no-such-id"))

	// Collection unchanged, but the mutation still wrote through once.
	transactions := store.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, txn.ID, transactions[0].ID)
	assert.Len(t, persist.saves, 2)
}

func TestStore_TransactionsReturnsSnapshot(t *testing.T) {
	store := New(context.Background(), &fakePersistence{})

	_, err := store.Add(context.Background(), validFields())
	require.NoError(t, err)

	snapshot := store.Transactions()
	snapshot[0].Description = "tampered"

	assert.Equal(t, "Coffee", store.Transactions()[0].Description)
}
