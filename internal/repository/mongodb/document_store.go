package mongodb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DocumentStore реализует хранилище документов поверх MongoDB.
type DocumentStore struct {
	db *mongo.Database
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db}
}

// CreateDocument вставляет документ и возвращает hex-представление ObjectID.
func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, doc domain.Document) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", storeError(whereami.WhereAmI(), err)
	}

	return InsertedIDString(res.InsertedID), nil
}

// GetDocuments выполняет Find по коллекции. MongoDB трактует limit=0 как «без ограничения»,
// поэтому нулевой limit обрабатывается здесь и не уходит в запрос.
func (s *DocumentStore) GetDocuments(ctx context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error) {
	if limit != nil && *limit == 0 {
		return []domain.Document{}, nil
	}

	opts := options.Find()
	if limit != nil {
		opts.SetLimit(*limit)
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, domain.Document(row))
	}

	return docs, nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return storeError(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *DocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, storeError(whereami.WhereAmI(), err)
	}

	return names, nil
}

// InsertedIDString приводит идентификатор, присвоенный MongoDB, к строке.
func InsertedIDString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}

	return fmt.Sprint(id)
}

func storeError(where string, err error) error {
	return e.Store(where, err)
}
