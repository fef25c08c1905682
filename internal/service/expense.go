package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService records expenses and answers aggregate queries. It holds no data of
// its own; both collections are owned by the repositories.
type ExpenseService struct {
	categories   CategoryRepository
	transactions TransactionRepository
	now          func() time.Time
}

// Option configures an ExpenseService.
type Option func(*ExpenseService)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *ExpenseService) {
		s.now = now
	}
}

// NewExpenseService creates a service over the given repositories.
func NewExpenseService(categories CategoryRepository, transactions TransactionRepository, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		categories:   categories,
		transactions: transactions,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date according to the service clock.
func (s *ExpenseService) Today() model.Date {
	return model.DateOf(s.now())
}

// AddExpense records an expense in the named category, creating the category when it
// does not exist yet. The transaction is appended and saved before returning.
func (s *ExpenseService) AddExpense(ctx context.Context, amount decimal.Decimal, date model.Date, categoryName, note string) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, common.ErrInvalidAmount
	}
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return model.Transaction{}, common.ErrEmptyCategoryName
	}
	if date.IsZero() {
		return model.Transaction{}, common.ErrMissingDate
	}

	cat, err := s.categories.Ensure(ctx, categoryName, model.CategoryTypeExpense)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to resolve category %q: %w", categoryName, err)
	}

	txn := model.Transaction{
		ID:         uuid.New(),
		Amount:     amount,
		Date:       date,
		Note:       note,
		CategoryID: cat.ID,
		Type:       model.TransactionTypeExpense,
	}

	if err := s.transactions.Add(ctx, txn); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to add expense: %w", err)
	}
	if err := s.transactions.Save(ctx); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to save expense: %w", err)
	}

	return txn, nil
}

// AddCategory ensures an expense category named name exists. Surrounding whitespace
// is trimmed before the case-insensitive lookup.
func (s *ExpenseService) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, common.ErrEmptyCategoryName
	}

	cat, err := s.categories.Ensure(ctx, name, model.CategoryTypeExpense)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to add category %q: %w", name, err)
	}
	return cat, nil
}

// GetCategories returns every category.
func (s *ExpenseService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.GetAll(ctx)
}

// TotalsByCategory sums expenses inside r per category name. A transaction whose
// category cannot be found yields an *common.UnresolvedCategoryError.
func (s *ExpenseService) TotalsByCategory(ctx context.Context, r model.DateRange) (map[string]decimal.Decimal, error) {
	expenses, err := s.expensesIn(ctx, r)
	if err != nil {
		return nil, err
	}

	cats, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	names := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	totals := make(map[string]decimal.Decimal)
	for _, txn := range expenses {
		name, ok := names[txn.CategoryID]
		if !ok {
			return nil, &common.UnresolvedCategoryError{TransactionID: txn.ID, CategoryID: txn.CategoryID}
		}
		totals[name] = totals[name].Add(txn.Amount)
	}
	return totals, nil
}

// TotalSpent sums every expense inside r. It is zero when nothing matches.
func (s *ExpenseService) TotalSpent(ctx context.Context, r model.DateRange) (decimal.Decimal, error) {
	expenses, err := s.expensesIn(ctx, r)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, txn := range expenses {
		total = total.Add(txn.Amount)
	}
	return total, nil
}

// GetExpenses returns the expenses inside r, newest first.
func (s *ExpenseService) GetExpenses(ctx context.Context, r model.DateRange) ([]model.Transaction, error) {
	expenses, err := s.expensesIn(ctx, r)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(expenses, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return expenses, nil
}

// GetExpensesByDateRange returns the transactions between start and end inclusive,
// oldest first. The range is not validated; an inverted range returns nothing.
func (s *ExpenseService) GetExpensesByDateRange(ctx context.Context, start, end model.Date) ([]model.Transaction, error) {
	return s.transactions.GetByDateRange(ctx, start, end)
}

// GetExpensesForToday returns the transactions dated today.
func (s *ExpenseService) GetExpensesForToday(ctx context.Context) ([]model.Transaction, error) {
	today := s.Today()
	return s.GetExpensesByDateRange(ctx, today, today)
}

// GetExpensesForThisWeek returns the transactions from Monday through Sunday of the
// current week.
func (s *ExpenseService) GetExpensesForThisWeek(ctx context.Context) ([]model.Transaction, error) {
	start, end := model.WeekBounds(s.Today())
	return s.GetExpensesByDateRange(ctx, start, end)
}

// GetExpensesForThisMonth returns the transactions of the current calendar month.
func (s *ExpenseService) GetExpensesForThisMonth(ctx context.Context) ([]model.Transaction, error) {
	start, end := model.MonthBounds(s.Today())
	return s.GetExpensesByDateRange(ctx, start, end)
}

func (s *ExpenseService) expensesIn(ctx context.Context, r model.DateRange) ([]model.Transaction, error) {
	all, err := s.transactions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	out := make([]model.Transaction, 0, len(all))
	for _, txn := range all {
		if txn.IsExpense() && r.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out, nil
}
