package db

import (
	"context"
	"testing"
	"time"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/damon-houk/finance-tracker/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises the behaviour every TransactionRepository backend must share.
// repo must start empty.
func runRepositoryContract(t *testing.T, repo repository.TransactionRepository) {
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Empty store lists nothing", func(t *testing.T) {
		txs, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, txs)
		assert.Empty(t, txs)
	})

	fixtures := []entity.Transaction{
		{ID: "b-middle", Type: entity.Expense, Category: "Food", Amount: 12.5, Date: base},
		{ID: "a-newest", Type: entity.Income, Category: "Salary", Amount: 2500, Date: base.Add(48 * time.Hour)},
		{ID: "c-oldest", Type: entity.Expense, Category: "Rent", Amount: 900, Date: base.Add(-72 * time.Hour)},
		{ID: "d-tie", Type: entity.Expense, Category: "Coffee", Amount: 3, Date: base},
	}

	t.Run("Store and find by ID", func(t *testing.T) {
		for i := range fixtures {
			id, err := repo.Store(ctx, &fixtures[i])
			require.NoError(t, err)
			assert.Equal(t, fixtures[i].ID, id)
		}

		got, err := repo.FindByID(ctx, "b-middle")
		require.NoError(t, err)
		assert.Equal(t, entity.Expense, got.Type)
		assert.Equal(t, "Food", got.Category)
		assert.Equal(t, 12.5, got.Amount)
		assert.True(t, base.Equal(got.Date))
	})

	t.Run("Find unknown ID", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, entity.ErrNotFound)
		assert.False(t, entity.IsStoreFault(err))
	})

	t.Run("List is ordered by date descending", func(t *testing.T) {
		txs, err := repo.FindAll(ctx)
		require.NoError(t, err)

		ids := make([]string, len(txs))
		for i, tx := range txs {
			ids[i] = tx.ID
		}
		assert.Equal(t, []string{"a-newest", "d-tie", "b-middle", "c-oldest"}, ids)

		for i := 1; i < len(txs); i++ {
			assert.False(t, txs[i].Date.After(txs[i-1].Date), "dates must be non-increasing")
		}
	})

	t.Run("Re-storing an ID moves it in the order", func(t *testing.T) {
		moved := fixtures[2]
		moved.Date = base.Add(96 * time.Hour)
		_, err := repo.Store(ctx, &moved)
		require.NoError(t, err)

		txs, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, txs, 4)
		assert.Equal(t, "c-oldest", txs[0].ID)

		// restore the original ordering for later subtests
		_, err = repo.Store(ctx, &fixtures[2])
		require.NoError(t, err)
	})

	t.Run("Delete removes the record", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "b-middle"))

		txs, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, txs, 3)
		for _, tx := range txs {
			assert.NotEqual(t, "b-middle", tx.ID)
		}

		_, err = repo.FindByID(ctx, "b-middle")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "b-middle"))
		assert.NoError(t, repo.Delete(ctx, "never-existed"))
	})

	t.Run("Dates far from the present keep their order", func(t *testing.T) {
		distant := []entity.Transaction{
			{ID: "e-year-3000", Type: entity.Income, Category: "Pension", Amount: 1, Date: time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "f-year-1500", Type: entity.Expense, Category: "Tithe", Amount: 2, Date: time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "g-year-2100", Type: entity.Expense, Category: "Rent", Amount: 3, Date: time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)},
		}
		for i := range distant {
			_, err := repo.Store(ctx, &distant[i])
			require.NoError(t, err)
		}

		txs, err := repo.FindAll(ctx)
		require.NoError(t, err)

		ids := make([]string, len(txs))
		for i, tx := range txs {
			ids[i] = tx.ID
		}
		assert.Equal(t, []string{"e-year-3000", "g-year-2100", "a-newest", "d-tie", "c-oldest", "f-year-1500"}, ids)
	})
}
