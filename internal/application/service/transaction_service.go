package service

import (
	"context"
	"time"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/damon-houk/finance-tracker/internal/domain/repository"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/middleware"
	"github.com/google/uuid"
)

// CreateTransactionInput carries the caller-supplied fields of a new transaction.
// A nil Amount means the field was missing; a nil Date defaults to the creation time.
type CreateTransactionInput struct {
	Type     entity.TransactionType
	Category string
	Amount   *float64
	Date     *time.Time
}

// TransactionService handles business logic for transactions
type TransactionService struct {
	repo   repository.TransactionRepository
	logger logger.Logger
	now    func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, log logger.Logger) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// CreateTransaction validates and stores a new transaction, returning the stored record
func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*entity.Transaction, error) {
	if in.Amount == nil {
		return nil, entity.NewValidationError("amount", "amount is required")
	}

	// Millisecond precision matches what every backend can round-trip
	date := s.now().UTC().Truncate(time.Millisecond)
	if in.Date != nil {
		date = in.Date.UTC().Truncate(time.Millisecond)
	}

	tx := &entity.Transaction{
		ID:       uuid.New().String(),
		Type:     in.Type,
		Category: in.Category,
		Amount:   *in.Amount,
		Date:     date,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Store(ctx, tx); err != nil {
		s.logger.Error("Failed to store transaction", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"id":         tx.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return tx, nil
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

// ListTransactions returns all transactions, most recent first
func (s *TransactionService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	return s.repo.FindAll(ctx)
}

// DeleteTransaction removes a transaction; unknown IDs are ignored
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Summary derives income, expense and balance totals over all stored transactions
func (s *TransactionService) Summary(ctx context.Context) (entity.Summary, error) {
	txs, err := s.repo.FindAll(ctx)
	if err != nil {
		return entity.Summary{}, err
	}

	return entity.Summarize(txs), nil
}
