// Package repository defines the storage contracts of the domain
package repository

import (
	"context"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction storage.
// Backend failures are reported as *entity.StoreFault.
type TransactionRepository interface {
	// Store saves a transaction and returns its ID
	Store(ctx context.Context, transaction *entity.Transaction) (string, error)

	// FindByID retrieves a transaction by its unique identifier.
	// It returns entity.ErrNotFound when the ID is unknown.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindAll returns every transaction ordered by date, most recent first
	FindAll(ctx context.Context) ([]entity.Transaction, error)

	// Delete removes a transaction. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying storage handle
	Close(ctx context.Context) error
}
