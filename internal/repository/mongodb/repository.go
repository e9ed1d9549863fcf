package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/store"
)

const snapshotCollection = "report_snapshots"

// Repository is a connected MongoDB database holding one collection per
// record table plus the report snapshots.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to uri and verifies the connection with a ping.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewRepositoryFromClient(client, dbName), nil
}

// NewRepositoryFromClient wraps an already connected client.
func NewRepositoryFromClient(client *mongo.Client, dbName string) *Repository {
	return &Repository{client: client, dbName: dbName}
}

// SaveSnapshot appends a report snapshot.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(snapshotCollection)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert report snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

type identified interface {
	RecordID() string
}

// Collection returns the record source backed by the named collection.
// Documents are keyed by record id in _id.
func Collection[T identified](r *Repository, name string) store.Source[T] {
	return &collectionSource[T]{
		coll: r.client.Database(r.dbName).Collection(name),
		name: name,
	}
}

type collectionSource[T identified] struct {
	coll *mongo.Collection
	name string
}

func (c *collectionSource[T]) Name() string { return "mongodb" }

func (c *collectionSource[T]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return records, nil
}

func (c *collectionSource[T]) Insert(ctx context.Context, record T) (T, error) {
	if _, err := c.coll.InsertOne(ctx, record); err != nil {
		var zero T
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("insert %s %s: %w", c.name, record.RecordID(), store.ErrDuplicateID)
		}
		return zero, fmt.Errorf("insert %s: %w", c.name, err)
	}
	return record, nil
}

func (c *collectionSource[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: record.RecordID()}}, record)
	if err != nil {
		return zero, fmt.Errorf("replace %s: %w", c.name, err)
	}
	if res.MatchedCount == 0 {
		return zero, fmt.Errorf("replace %s %s: %w", c.name, record.RecordID(), store.ErrNotFound)
	}
	return record, nil
}

func (c *collectionSource[T]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %s %s: %w", c.name, id, store.ErrNotFound)
	}
	return nil
}
