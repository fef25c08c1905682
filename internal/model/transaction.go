package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes outflows from inflows.
type TransactionType string

const (
	// TransactionTypeExpense is money going out.
	TransactionTypeExpense TransactionType = "Expense"
	// TransactionTypeIncome is money coming in.
	TransactionTypeIncome TransactionType = "Income"
)

// UnmarshalJSON accepts "Expense" or "Income". A missing or empty value decodes as Expense.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("transaction type must be a string: %w", err)
	}
	switch TransactionType(s) {
	case "", TransactionTypeExpense:
		*t = TransactionTypeExpense
		return nil
	case TransactionTypeIncome:
		*t = TransactionTypeIncome
		return nil
	default:
		return fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is a single recorded expense or income.
type Transaction struct {
	ID         uuid.UUID       `json:"transactionId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       Date            `json:"date"`
	Note       string          `json:"note"`
	CategoryID uuid.UUID       `json:"categoryId"`
	AccountID  *uuid.UUID      `json:"accountId"` // unused by any operation
	Type       TransactionType `json:"type"`
}

// Clone returns a copy of t that shares no memory with it.
func (t Transaction) Clone() Transaction {
	if t.AccountID != nil {
		id := *t.AccountID
		t.AccountID = &id
	}
	return t
}

// IsExpense reports whether t is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// MarshalJSON writes the amount as a JSON number instead of decimal's default string.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         uuid.UUID       `json:"transactionId"`
		Amount     json.Number     `json:"amount"`
		Date       Date            `json:"date"`
		Note       string          `json:"note"`
		CategoryID uuid.UUID       `json:"categoryId"`
		AccountID  *uuid.UUID      `json:"accountId"`
		Type       TransactionType `json:"type"`
	}{
		ID:         t.ID,
		Amount:     json.Number(t.Amount.String()),
		Date:       t.Date,
		Note:       t.Note,
		CategoryID: t.CategoryID,
		AccountID:  t.AccountID,
		Type:       t.Type,
	})
}

// UnmarshalJSON decodes a transaction, defaulting the type to Expense when it is absent.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	p := plain{Type: TransactionTypeExpense}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Transaction(p)
	return nil
}
