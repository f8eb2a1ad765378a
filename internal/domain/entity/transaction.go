package entity

import (
	"math"
	"strings"
	"time"
)

// TransactionType classifies a transaction as money coming in or going out
type TransactionType string

const (
	// Income is money received
	Income TransactionType = "income"
	// Expense is money spent
	Expense TransactionType = "expense"
)

// Valid reports whether the type is one of the known values
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction represents one recorded income or expense event
type Transaction struct {
	ID       string          `json:"id" bson:"_id"`
	Type     TransactionType `json:"type" bson:"type"`
	Category string          `json:"category" bson:"category"`
	Amount   float64         `json:"amount" bson:"amount"`
	Date     time.Time       `json:"date" bson:"date"`
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if t.Type == "" {
		return NewValidationError("type", "type is required")
	}

	if !t.Type.Valid() {
		return NewValidationError("type", "type must be one of income, expense; got "+string(t.Type))
	}

	if strings.TrimSpace(t.Category) == "" {
		return NewValidationError("category", "category is required")
	}

	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return NewValidationError("amount", "amount must be a finite number")
	}

	if t.Amount < 0 {
		return NewValidationError("amount", "amount must not be negative")
	}

	return nil
}
