// Package testutil provides test helpers that wire the stores and the service over a
// temporary data directory.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
	"github.com/Veraticus/expense-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestEnv bundles a service with the stores backing it.
type TestEnv struct {
	Service      *service.ExpenseService
	Categories   *storage.CategoryStore
	Transactions *storage.TransactionStore
	t            *testing.T
	Dir          string
}

// SetupTestEnv creates fresh stores in a temporary directory and a service over them.
//
// Example:
//
//	env := testutil.SetupTestEnv(t, service.WithClock(testutil.FixedClock(2024, time.May, 15)))
//	env.MustAddExpense("10.00", "2024-05-15", "Food", "lunch")
func SetupTestEnv(t *testing.T, opts ...service.Option) *TestEnv {
	t.Helper()
	return OpenTestEnv(t, t.TempDir(), opts...)
}

// OpenTestEnv opens the stores in dir, which may already hold data files.
func OpenTestEnv(t *testing.T, dir string, opts ...service.Option) *TestEnv {
	t.Helper()

	cats, err := storage.NewCategoryStore(dir)
	if err != nil {
		t.Fatalf("failed to open category store: %v", err)
	}
	txns, err := storage.NewTransactionStore(dir)
	if err != nil {
		t.Fatalf("failed to open transaction store: %v", err)
	}

	return &TestEnv{
		Service:      service.NewExpenseService(cats, txns, opts...),
		Categories:   cats,
		Transactions: txns,
		Dir:          dir,
		t:            t,
	}
}

// MustAddExpense records an expense through the service, failing the test on error.
func (e *TestEnv) MustAddExpense(amount, date, category, note string) model.Transaction {
	e.t.Helper()

	txn, err := e.Service.AddExpense(context.Background(), decimal.RequireFromString(amount), MustDate(e.t, date), category, note)
	if err != nil {
		e.t.Fatalf("failed to add expense %s %s: %v", amount, category, err)
	}
	return txn
}

// MustAddIncome records an income transaction directly in the transaction store.
func (e *TestEnv) MustAddIncome(amount, date, category string) model.Transaction {
	e.t.Helper()
	ctx := context.Background()

	cat, err := e.Categories.Ensure(ctx, category, model.CategoryTypeIncome)
	if err != nil {
		e.t.Fatalf("failed to ensure income category %q: %v", category, err)
	}

	txn := model.Transaction{
		ID:         uuid.New(),
		Amount:     decimal.RequireFromString(amount),
		Date:       MustDate(e.t, date),
		CategoryID: cat.ID,
		Type:       model.TransactionTypeIncome,
	}
	if err := e.Transactions.Add(ctx, txn); err != nil {
		e.t.Fatalf("failed to add income: %v", err)
	}
	if err := e.Transactions.Save(ctx); err != nil {
		e.t.Fatalf("failed to save income: %v", err)
	}
	return txn
}

// MustDate parses a YYYY-MM-DD date, failing the test on error.
func MustDate(t *testing.T, s string) model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// FixedClock returns a clock that always reports noon on the given day.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	}
}
