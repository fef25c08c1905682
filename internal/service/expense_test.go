package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
	"github.com/Veraticus/expense-tracker/internal/storage"
	"github.com/Veraticus/expense-tracker/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func notes(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, txn := range txns {
		out[i] = txn.Note
	}
	return out
}

func TestAddExpense_CreatesTransactionAndCategory(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	before, err := env.Service.GetCategories(ctx)
	require.NoError(t, err)

	txn := env.MustAddExpense("12.34", "2024-05-15", "Books", "novel")

	assert.Equal(t, model.TransactionTypeExpense, txn.Type)
	assert.True(t, dec("12.34").Equal(txn.Amount))
	assert.Equal(t, "novel", txn.Note)

	after, err := env.Service.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	books := after[len(after)-1]
	assert.Equal(t, "Books", books.Name)
	assert.Equal(t, model.CategoryTypeExpense, books.Type)
	assert.Equal(t, books.ID, txn.CategoryID)

	all, err := env.Transactions.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, txn.ID, all[0].ID)
}

func TestAddExpense_PersistsImmediately(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	txn := env.MustAddExpense("3.00", "2024-05-15", "Food", "")

	reopened := testutil.OpenTestEnv(t, env.Dir)
	all, err := reopened.Transactions.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, txn.ID, all[0].ID)
}

func TestAddExpense_ReusesCategory(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	first := env.MustAddExpense("1", "2024-05-15", "Coffee", "")
	second := env.MustAddExpense("2", "2024-05-16", "coffee", "")
	third := env.MustAddExpense("3", "2024-05-17", "  COFFEE ", "")

	assert.Equal(t, first.CategoryID, second.CategoryID)
	assert.Equal(t, first.CategoryID, third.CategoryID)

	cats, err := env.Service.GetCategories(ctx)
	require.NoError(t, err)
	count := 0
	for _, c := range cats {
		if c.Name == "Coffee" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, cats, 6)
}

func TestAddExpense_ValidationLeavesStoresUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		date     model.Date
		category string
		wantErr  error
	}{
		{name: "zero amount", amount: decimal.Zero, date: model.NewDate(2024, time.May, 1), category: "NewCat", wantErr: common.ErrInvalidAmount},
		{name: "negative amount", amount: dec("-5"), date: model.NewDate(2024, time.May, 1), category: "NewCat", wantErr: common.ErrInvalidAmount},
		{name: "blank category", amount: dec("5"), date: model.NewDate(2024, time.May, 1), category: "   ", wantErr: common.ErrEmptyCategoryName},
		{name: "missing date", amount: dec("5"), category: "NewCat", wantErr: common.ErrMissingDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.SetupTestEnv(t)
			ctx := context.Background()

			_, err := env.Service.AddExpense(ctx, tt.amount, tt.date, tt.category, "")
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, common.IsValidation(err))

			all, err := env.Transactions.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			cats, err := env.Service.GetCategories(ctx)
			require.NoError(t, err)
			assert.Len(t, cats, len(storage.DefaultCategories()))
		})
	}
}

func TestAddCategory(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	created, err := env.Service.AddCategory(ctx, "  Gifts  ")
	require.NoError(t, err)
	assert.Equal(t, "Gifts", created.Name)
	assert.Equal(t, model.CategoryTypeExpense, created.Type)

	again, err := env.Service.AddCategory(ctx, "gifts")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	_, err = env.Service.AddCategory(ctx, " \t ")
	assert.ErrorIs(t, err, common.ErrEmptyCategoryName)

	cats, err := env.Service.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 6)
}

func TestAddCategory_DoesNotMatchIncomeCategory(t *testing.T) {
	env := testutil.SetupTestEnv(t)

	cat, err := env.Service.AddCategory(context.Background(), "salary")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTypeExpense, cat.Type)
	assert.Equal(t, "salary", cat.Name)
}

func TestTotalsByCategory(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	env.MustAddExpense("10.00", "2024-05-01", "Food", "")
	env.MustAddExpense("5.50", "2024-05-02", "Food", "")
	env.MustAddExpense("3.25", "2024-05-03", "Transport", "")
	env.MustAddIncome("2000.00", "2024-05-01", "Salary")

	totals, err := env.Service.TotalsByCategory(ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.True(t, dec("15.50").Equal(totals["Food"]), "Food = %s", totals["Food"])
	assert.True(t, dec("3.25").Equal(totals["Transport"]), "Transport = %s", totals["Transport"])
	_, hasSalary := totals["Salary"]
	assert.False(t, hasSalary, "income is excluded")
}

func TestTotalsByCategory_DateBounds(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	env.MustAddExpense("1", "2024-05-01", "Food", "")
	env.MustAddExpense("2", "2024-05-10", "Food", "")
	env.MustAddExpense("4", "2024-05-20", "Transport", "")

	from := testutil.MustDate(t, "2024-05-10")
	to := testutil.MustDate(t, "2024-05-10")

	tests := []struct {
		name  string
		r     model.DateRange
		want  map[string]string
		total string
	}{
		{name: "unbounded", r: model.DateRange{}, want: map[string]string{"Food": "3", "Transport": "4"}, total: "7"},
		{name: "from only", r: model.DateRange{From: &from}, want: map[string]string{"Food": "2", "Transport": "4"}, total: "6"},
		{name: "to only", r: model.DateRange{To: &to}, want: map[string]string{"Food": "3"}, total: "3"},
		{name: "single day", r: model.Between(from, to), want: map[string]string{"Food": "2"}, total: "2"},
		{name: "nothing", r: model.Between(testutil.MustDate(t, "2023-01-01"), testutil.MustDate(t, "2023-12-31")), want: map[string]string{}, total: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := env.Service.TotalsByCategory(ctx, tt.r)
			require.NoError(t, err)
			require.Len(t, totals, len(tt.want))
			for name, amount := range tt.want {
				assert.True(t, dec(amount).Equal(totals[name]), "%s = %s", name, totals[name])
			}

			total, err := env.Service.TotalSpent(ctx, tt.r)
			require.NoError(t, err)
			assert.True(t, dec(tt.total).Equal(total), "total = %s", total)
		})
	}
}

func TestTotalSpent_ExcludesIncomeAndStartsAtZero(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	total, err := env.Service.TotalSpent(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	env.MustAddIncome("500", "2024-05-01", "Salary")
	env.MustAddExpense("0.10", "2024-05-01", "Food", "")
	env.MustAddExpense("0.20", "2024-05-01", "Food", "")

	total, err = env.Service.TotalSpent(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "0.3", total.String(), "decimal sums are exact")
}

func TestTotalsByCategory_UnresolvedCategory(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	env.MustAddExpense("1", "2024-05-01", "Food", "")
	orphan := model.Transaction{
		ID:         uuid.New(),
		Amount:     dec("9"),
		Date:       testutil.MustDate(t, "2024-05-02"),
		CategoryID: uuid.New(),
		Type:       model.TransactionTypeExpense,
	}
	require.NoError(t, env.Transactions.Add(ctx, orphan))

	_, err := env.Service.TotalsByCategory(ctx, model.DateRange{})
	require.ErrorIs(t, err, common.ErrUnresolvedCategory)

	var unresolved *common.UnresolvedCategoryError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, orphan.ID, unresolved.TransactionID)
	assert.Equal(t, orphan.CategoryID, unresolved.CategoryID)
}

func TestTotalsByCategory_HandEditedFile(t *testing.T) {
	dir := t.TempDir()
	content := `[
  {
    "transactionId": "6f1c1f3e-8d58-4b43-9b35-0a8f2a3c9d11",
    "amount": 4.5,
    "date": "2024-05-01",
    "note": "",
    "categoryId": "0c7d8a59-2b35-4f55-8d7e-3f4a1e9b2c60",
    "accountId": null,
    "type": "Expense"
  }
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.TransactionsFile), []byte(content), 0600))

	env := testutil.OpenTestEnv(t, dir)
	_, err := env.Service.TotalsByCategory(context.Background(), model.DateRange{})
	assert.ErrorIs(t, err, common.ErrUnresolvedCategory)
}

func TestGetExpenses_NewestFirstAndExpensesOnly(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	env.MustAddExpense("1", "2024-05-02", "Food", "b")
	env.MustAddExpense("1", "2024-05-09", "Food", "c")
	env.MustAddExpense("1", "2024-05-01", "Food", "a")
	env.MustAddIncome("100", "2024-05-05", "Salary")

	all, err := env.Service.GetExpenses(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, notes(all))

	from := testutil.MustDate(t, "2024-05-02")
	bounded, err := env.Service.GetExpenses(ctx, model.DateRange{From: &from})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, notes(bounded))
}

func TestGetExpensesByDateRange(t *testing.T) {
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	env.MustAddExpense("1", "2024-05-09", "Food", "later")
	env.MustAddExpense("1", "2024-05-03", "Food", "day")
	env.MustAddExpense("1", "2024-05-01", "Food", "earlier")

	got, err := env.Service.GetExpensesByDateRange(ctx, testutil.MustDate(t, "2024-05-01"), testutil.MustDate(t, "2024-05-09"))
	require.NoError(t, err)
	assert.Equal(t, []string{"earlier", "day", "later"}, notes(got))

	single, err := env.Service.GetExpensesByDateRange(ctx, testutil.MustDate(t, "2024-05-03"), testutil.MustDate(t, "2024-05-03"))
	require.NoError(t, err)
	assert.Equal(t, []string{"day"}, notes(single))

	inverted, err := env.Service.GetExpensesByDateRange(ctx, testutil.MustDate(t, "2024-05-09"), testutil.MustDate(t, "2024-05-01"))
	require.NoError(t, err)
	assert.Empty(t, inverted)
}

func TestDateWindows(t *testing.T) {
	// Wednesday.
	env := testutil.SetupTestEnv(t, service.WithClock(testutil.FixedClock(2024, time.May, 15)))
	ctx := context.Background()

	for _, day := range []string{"2024-04-30", "2024-05-01", "2024-05-12", "2024-05-13", "2024-05-15", "2024-05-19", "2024-05-20", "2024-05-31", "2024-06-01"} {
		env.MustAddExpense("1", day, "Food", day)
	}

	today, err := env.Service.GetExpensesForToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-15"}, notes(today))

	week, err := env.Service.GetExpensesForThisWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-13", "2024-05-15", "2024-05-19"}, notes(week))

	month, err := env.Service.GetExpensesForThisMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-05-12", "2024-05-13", "2024-05-15", "2024-05-19", "2024-05-20", "2024-05-31"}, notes(month))
}

func TestGetExpensesForThisMonth_February(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		lastDay string
		outside string
	}{
		{name: "leap year", year: 2024, lastDay: "2024-02-29", outside: "2024-03-01"},
		{name: "non-leap year", year: 2023, lastDay: "2023-02-28", outside: "2023-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.SetupTestEnv(t, service.WithClock(testutil.FixedClock(tt.year, time.February, 14)))
			env.MustAddExpense("1", tt.lastDay, "Food", tt.lastDay)
			env.MustAddExpense("1", tt.outside, "Food", tt.outside)

			month, err := env.Service.GetExpensesForThisMonth(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{tt.lastDay}, notes(month))
		})
	}
}

type failingTransactions struct {
	service.TransactionRepository
	saveErr error
}

func (f *failingTransactions) Save(context.Context) error {
	return f.saveErr
}

func TestAddExpense_SaveErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	cats, err := storage.NewCategoryStore(dir)
	require.NoError(t, err)
	txns, err := storage.NewTransactionStore(dir)
	require.NoError(t, err)

	diskFull := errors.New("disk full")
	svc := service.NewExpenseService(cats, &failingTransactions{TransactionRepository: txns, saveErr: diskFull})

	_, err = svc.AddExpense(context.Background(), dec("1"), model.NewDate(2024, time.May, 1), "Food", "")
	assert.ErrorIs(t, err, diskFull)
	assert.False(t, common.IsValidation(err))
}
