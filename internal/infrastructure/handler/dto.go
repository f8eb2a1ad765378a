package handler

import "time"

// CreateTransactionRequest represents the request body for creating a transaction.
// Pointer fields distinguish a missing value from its zero value.
type CreateTransactionRequest struct {
	Type     string     `json:"type"`
	Category string     `json:"category"`
	Amount   *float64   `json:"amount"`
	Date     *time.Time `json:"date,omitempty"`
}

// TransactionResponse represents a stored transaction on the wire
type TransactionResponse struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// SummaryResponse represents the totals over all stored transactions
type SummaryResponse struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
