package report

import (
	"context"

	"splice-reports/internal/config"
	"splice-reports/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindOptions narrows a store query. Nil Skip/Limit means unbounded.
type FindOptions struct {
	Projection bson.M
	Sort       bson.D
	Skip       *int64
	Limit      *int64
}

// CheckinStore is the queryable check-in collection. The engine only issues
// simple equality/range/set-membership predicates against it; storage,
// indexing and consistency belong to the store.
type CheckinStore interface {
	Count(ctx context.Context, predicate bson.M) (int64, error)
	Find(ctx context.Context, predicate bson.M, opts *FindOptions) ([]Document, error)
	FindOne(ctx context.Context, predicate bson.M) (Document, error)
}

type MongoCheckinStore struct {
	Collection *mongo.Collection
}

func NewCheckinStore(db *database.MongodbDB, cfg *config.Config) CheckinStore {
	return &MongoCheckinStore{
		Collection: db.DB.Collection(cfg.CheckinCollection),
	}
}

func (s *MongoCheckinStore) Count(ctx context.Context, predicate bson.M) (int64, error) {
	return s.Collection.CountDocuments(ctx, predicate)
}

func (s *MongoCheckinStore) Find(ctx context.Context, predicate bson.M, opts *FindOptions) ([]Document, error) {
	findOpts := options.Find()
	if opts != nil {
		if opts.Projection != nil {
			findOpts.SetProjection(opts.Projection)
		}
		if opts.Sort != nil {
			findOpts.SetSort(opts.Sort)
		}
		if opts.Skip != nil {
			findOpts.SetSkip(*opts.Skip)
		}
		if opts.Limit != nil {
			findOpts.SetLimit(*opts.Limit)
		}
	}

	cursor, err := s.Collection.Find(ctx, predicate, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *MongoCheckinStore) FindOne(ctx context.Context, predicate bson.M) (Document, error) {
	var doc Document
	if err := s.Collection.FindOne(ctx, predicate).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
