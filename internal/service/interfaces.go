// Package service implements the expense tracking operations on top of the stores.
package service

import (
	"context"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/google/uuid"
)

// CategoryRepository defines the contract for the category collection.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	// Ensure returns the category matching name (case-insensitively) and type,
	// creating and persisting it when missing.
	Ensure(ctx context.Context, name string, categoryType model.CategoryType) (model.Category, error)
}

// TransactionRepository defines the contract for the transaction collection.
type TransactionRepository interface {
	Add(ctx context.Context, txn model.Transaction) error
	GetAll(ctx context.Context) ([]model.Transaction, error)
	Save(ctx context.Context) error
	GetByDateRange(ctx context.Context, start, end model.Date) ([]model.Transaction, error)
}
