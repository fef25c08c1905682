package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// TransactionsFile is the name of the transaction collection inside the data directory.
const TransactionsFile = "transactions.json"

// TransactionStore owns the transaction collection and its backing file.
// Add only changes memory; Save writes the collection, so callers can batch.
type TransactionStore struct {
	path         string
	transactions []model.Transaction
	mu           sync.Mutex
}

// NewTransactionStore loads transactions.json from dataDir, creating an empty file
// when it does not exist yet.
func NewTransactionStore(dataDir string) (*TransactionStore, error) {
	if err := validateString(dataDir, "dataDir"); err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, TransactionsFile)
	transactions, err := LoadOrInit(path, func() []model.Transaction { return []model.Transaction{} })
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	slog.Debug("loaded transactions", "count", len(transactions), "path", path)
	return &TransactionStore{path: path, transactions: transactions}, nil
}

// Path returns the backing file of the store.
func (s *TransactionStore) Path() string {
	return s.path
}

// Add appends txn to the in-memory collection.
func (s *TransactionStore) Add(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, txn.Clone())
	return nil
}

// GetAll returns a snapshot of every transaction in insertion order.
func (s *TransactionStore) GetAll(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneTransactions(s.transactions), nil
}

// Save writes the full collection to the backing file.
func (s *TransactionStore) Save(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := Save(s.path, s.transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// GetByDateRange returns the transactions dated between start and end inclusive,
// sorted by ascending date. An inverted range matches nothing.
func (s *TransactionStore) GetByDateRange(ctx context.Context, start, end model.Date) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	window := model.Between(start, end)
	out := make([]model.Transaction, 0)
	for _, txn := range s.transactions {
		if window.Contains(txn.Date) {
			out = append(out, txn.Clone())
		}
	}

	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

func cloneTransactions(in []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(in))
	for i, txn := range in {
		out[i] = txn.Clone()
	}
	return out
}
