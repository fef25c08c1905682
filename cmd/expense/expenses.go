package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		date string
		note string
	)

	cmd := &cobra.Command{
		Use:   "add <amount> <category>",
		Short: "Record an expense",
		Long: `Record an expense in a category. The category is created when it does not exist yet;
names are matched ignoring case.`,
		Example: `  expense add 12.50 Food --note "lunch"
  expense add 30 Transport --date 2024-05-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := cli.ParseAmount(args[0])
			if err != nil {
				return err
			}

			svc, err := initService()
			if err != nil {
				return err
			}

			day := svc.Today()
			if date != "" {
				if day, err = cli.ParseDateInput(date); err != nil {
					return err
				}
			}

			txn, err := svc.AddExpense(cmd.Context(), amount, day, args[1], note)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s to %s on %s", cli.FormatAmount(txn.Amount), args[1], txn.Date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date of the expense (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-text note")

	return cmd
}

func listCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRange(from, to)
			if err != nil {
				return err
			}

			return renderWith(cmd, func(ctx context.Context, svc *service.ExpenseService) ([]model.Transaction, error) {
				return svc.GetExpenses(ctx, r)
			})
		},
	}

	addRangeFlags(cmd, &from, &to)
	return cmd
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List today's transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderWith(cmd, func(ctx context.Context, svc *service.ExpenseService) ([]model.Transaction, error) {
				return svc.GetExpensesForToday(ctx)
			})
		},
	}
}

func weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "List this week's transactions (Monday to Sunday)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderWith(cmd, func(ctx context.Context, svc *service.ExpenseService) ([]model.Transaction, error) {
				return svc.GetExpensesForThisWeek(ctx)
			})
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "List this month's transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderWith(cmd, func(ctx context.Context, svc *service.ExpenseService) ([]model.Transaction, error) {
				return svc.GetExpensesForThisMonth(ctx)
			})
		},
	}
}

func rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "range <start> <end>",
		Short:   "List transactions between two dates, oldest first",
		Example: "  expense range 2024-05-01 2024-05-31",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := cli.ParseDateInput(args[0])
			if err != nil {
				return err
			}
			end, err := cli.ParseDateInput(args[1])
			if err != nil {
				return err
			}
			if start.After(end) {
				return common.ErrInvalidDateRange
			}

			return renderWith(cmd, func(ctx context.Context, svc *service.ExpenseService) ([]model.Transaction, error) {
				return svc.GetExpensesByDateRange(ctx, start, end)
			})
		},
	}
}

func totalsCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show spending per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRange(from, to)
			if err != nil {
				return err
			}

			svc, err := initService()
			if err != nil {
				return err
			}

			totals, err := svc.TotalsByCategory(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("failed to compute totals: %w", err)
			}
			spent, err := svc.TotalSpent(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("failed to compute total spent: %w", err)
			}

			return cli.RenderTotals(cmd.OutOrStdout(), totals, spent)
		},
	}

	addRangeFlags(cmd, &from, &to)
	return cmd
}

// renderWith runs query against a fresh service and prints the result as a table.
func renderWith(cmd *cobra.Command, query func(context.Context, *service.ExpenseService) ([]model.Transaction, error)) error {
	svc, err := initService()
	if err != nil {
		return err
	}

	txns, err := query(cmd.Context(), svc)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	cats, err := svc.GetCategories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}

	return cli.RenderExpenses(cmd.OutOrStdout(), txns, cats)
}
