package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// CategoryType indicates whether a category is for income or expense.
type CategoryType string

const (
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "Expense"
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "Income"
)

// UnmarshalJSON rejects anything other than "Expense" or "Income".
func (c *CategoryType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category type must be a string: %w", err)
	}
	switch CategoryType(s) {
	case CategoryTypeExpense, CategoryTypeIncome:
		*c = CategoryType(s)
		return nil
	default:
		return fmt.Errorf("unknown category type %q", s)
	}
}

// Category groups transactions under a display name.
type Category struct {
	ID   uuid.UUID    `json:"categoryId"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// NewCategory creates a category with a fresh identifier.
func NewCategory(name string, categoryType CategoryType) Category {
	return Category{
		ID:   uuid.New(),
		Name: name,
		Type: categoryType,
	}
}
