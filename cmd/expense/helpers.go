package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/config"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
	"github.com/Veraticus/expense-tracker/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initService opens both stores in the configured data directory, creating it if needed.
func initService() (*service.ExpenseService, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	categories, err := storage.NewCategoryStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	transactions, err := storage.NewTransactionStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return service.NewExpenseService(categories, transactions), nil
}

// addRangeFlags registers --from and --to on cmd.
func addRangeFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "only include expenses on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(to, "to", "", "only include expenses on or before this date (YYYY-MM-DD)")
}

// parseRange turns optional --from/--to values into a DateRange.
func parseRange(from, to string) (model.DateRange, error) {
	var r model.DateRange

	if from != "" {
		d, err := model.ParseDate(from)
		if err != nil {
			return r, fmt.Errorf("%w: --from: %v", common.ErrValidation, err)
		}
		r.From = &d
	}
	if to != "" {
		d, err := model.ParseDate(to)
		if err != nil {
			return r, fmt.Errorf("%w: --to: %v", common.ErrValidation, err)
		}
		r.To = &d
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return r, common.ErrInvalidDateRange
	}

	return r, nil
}
