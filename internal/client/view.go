package client

import (
	"context"
	"sync"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
)

// Store is the subset of Client the view depends on
type Store interface {
	List(ctx context.Context) ([]entity.Transaction, error)
	Create(ctx context.Context, txType entity.TransactionType, category string, amount float64) (*entity.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// View holds the locally fetched transactions and derives the summary from them.
// After a successful write the local copy is reconciled without refetching.
// A failed call is logged and returned, leaving the local copy unchanged.
type View struct {
	store  Store
	logger logger.Logger

	mu           sync.RWMutex
	transactions []entity.Transaction
}

// NewView creates an empty view over store
func NewView(store Store, log logger.Logger) *View {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	return &View{
		store:        store,
		logger:       log,
		transactions: []entity.Transaction{},
	}
}

// Refresh replaces the local copy with the server's current list
func (v *View) Refresh(ctx context.Context) error {
	txs, err := v.store.List(ctx)
	if err != nil {
		v.logger.Error("Failed to fetch transactions", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	v.mu.Lock()
	v.transactions = txs
	v.mu.Unlock()
	return nil
}

// Add creates a transaction and prepends the stored record to the local copy
func (v *View) Add(ctx context.Context, txType entity.TransactionType, category string, amount float64) (*entity.Transaction, error) {
	tx, err := v.store.Create(ctx, txType, category, amount)
	if err != nil {
		v.logger.Error("Failed to add transaction", map[string]interface{}{
			"type":     txType,
			"category": category,
			"error":    err.Error(),
		})
		return nil, err
	}

	v.mu.Lock()
	v.transactions = append([]entity.Transaction{*tx}, v.transactions...)
	v.mu.Unlock()
	return tx, nil
}

// Delete removes a transaction on the server and then from the local copy
func (v *View) Delete(ctx context.Context, id string) error {
	if err := v.store.Delete(ctx, id); err != nil {
		v.logger.Error("Failed to delete transaction", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return err
	}

	v.mu.Lock()
	kept := make([]entity.Transaction, 0, len(v.transactions))
	for _, tx := range v.transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	v.transactions = kept
	v.mu.Unlock()
	return nil
}

// Transactions returns a copy of the local records in display order
func (v *View) Transactions() []entity.Transaction {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]entity.Transaction, len(v.transactions))
	copy(out, v.transactions)
	return out
}

// Summary recomputes the totals over the local records
func (v *View) Summary() entity.Summary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return entity.Summarize(v.transactions)
}
