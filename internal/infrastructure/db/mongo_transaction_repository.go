package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionsCollection is the collection holding transaction documents
const TransactionsCollection = "transactions"

// MongoTransactionRepository implements the transaction repository interface on a MongoDB collection
type MongoTransactionRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo dials MongoDB and verifies the connection with a ping
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// NewMongoTransactionRepository creates a repository on database.transactions and
// ensures the date index used by listing exists
func NewMongoTransactionRepository(ctx context.Context, client *mongo.Client, database string) (*MongoTransactionRepository, error) {
	coll := client.Database(database).Collection(TransactionsCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: -1}},
		Options: options.Index().SetName("date_desc"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create date index: %w", err)
	}

	return &MongoTransactionRepository{client: client, collection: coll}, nil
}

// Store saves a transaction and returns its ID
func (r *MongoTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tx.ID}, tx, options.Replace().SetUpsert(true))
	if err != nil {
		return "", entity.NewStoreFault("create", fmt.Errorf("failed to store transaction: %w", err))
	}

	return tx.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *MongoTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx entity.Transaction

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, entity.NewStoreFault("get", fmt.Errorf("failed to retrieve transaction: %w", err))
	}

	return &tx, nil
}

// FindAll returns every transaction ordered by date, most recent first
func (r *MongoTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, entity.NewStoreFault("list", fmt.Errorf("failed to query transactions: %w", err))
	}

	txs := make([]entity.Transaction, 0)
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, entity.NewStoreFault("list", fmt.Errorf("failed to decode transactions: %w", err))
	}

	return txs, nil
}

// Delete removes a transaction. A delete that matches nothing still succeeds.
func (r *MongoTransactionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return entity.NewStoreFault("delete", fmt.Errorf("failed to delete transaction %s: %w", id, err))
	}

	return nil
}

// Close disconnects the client
func (r *MongoTransactionRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
