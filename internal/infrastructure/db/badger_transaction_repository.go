package db

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

const (
	txPrefix   = "tx:"
	datePrefix = "txdate:"
)

// BadgerTransactionRepository implements the transaction repository interface using BadgerDB.
//
// Each transaction is a JSON document under tx:<id>. A second key,
// txdate:<sortable date>:<id>, indexes it by date so listing is a reverse prefix scan.
type BadgerTransactionRepository struct {
	db *badger.DB
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction repository
func NewBadgerTransactionRepository(db *badger.DB) *BadgerTransactionRepository {
	return &BadgerTransactionRepository{db: db}
}

// OpenBadger opens (creating if needed) a Badger database at path with its logger disabled
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}
	return db, nil
}

func docKey(id string) []byte {
	return []byte(txPrefix + id)
}

// dateKey orders lexicographically by date then id: Unix seconds with the sign
// bit flipped so pre-1970 dates sort first, then the nanosecond remainder.
func dateKey(date time.Time, id string) []byte {
	key := make([]byte, 0, len(datePrefix)+8+4+1+len(id))
	key = append(key, datePrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(date.Unix())^(1<<63))
	key = binary.BigEndian.AppendUint32(key, uint32(date.Nanosecond()))
	key = append(key, ':')
	return append(key, id...)
}

// prefixEnd returns the smallest key greater than every key starting with prefix
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Store saves a transaction and returns its ID
func (r *BadgerTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return "", entity.NewStoreFault("create", fmt.Errorf("failed to marshal transaction: %w", err))
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		// Re-storing an ID must not leave its previous date index behind
		prev, err := getDoc(txn, tx.ID)
		if err == nil {
			if err := txn.Delete(dateKey(prev.Date, prev.ID)); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(docKey(tx.ID), data); err != nil {
			return err
		}
		return txn.Set(dateKey(tx.Date, tx.ID), []byte(tx.ID))
	})
	if err != nil {
		return "", entity.NewStoreFault("create", fmt.Errorf("failed to store transaction: %w", err))
	}

	return tx.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx *entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		tx, err = getDoc(txn, id)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotFound, id)
	}

	if err != nil {
		return nil, entity.NewStoreFault("get", fmt.Errorf("failed to retrieve transaction: %w", err))
	}

	return tx, nil
}

// FindAll returns every transaction ordered by date, most recent first
func (r *BadgerTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	txs := make([]entity.Transaction, 0)
	prefix := []byte(datePrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		// A reverse scan has to start past the last key carrying the prefix
		for it.Seek(prefixEnd(prefix)); it.ValidForPrefix(prefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			tx, err := getDoc(txn, string(id))
			if err != nil {
				return fmt.Errorf("index entry for %s: %w", id, err)
			}
			txs = append(txs, *tx)
		}
		return nil
	})
	if err != nil {
		return nil, entity.NewStoreFault("list", fmt.Errorf("failed to list transactions: %w", err))
	}

	return txs, nil
}

// Delete removes a transaction and its date index entry
func (r *BadgerTransactionRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		tx, err := getDoc(txn, id)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := txn.Delete(dateKey(tx.Date, tx.ID)); err != nil {
			return err
		}
		return txn.Delete(docKey(id))
	})
	if err != nil {
		return entity.NewStoreFault("delete", fmt.Errorf("failed to delete transaction %s: %w", id, err))
	}

	return nil
}

// Close closes the underlying database
func (r *BadgerTransactionRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func getDoc(txn *badger.Txn, id string) (*entity.Transaction, error) {
	item, err := txn.Get(docKey(id))
	if err != nil {
		return nil, err
	}

	var tx entity.Transaction
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &tx)
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
