package filter

import (
	"context"
	"time"

	"splice-reports/internal/config"
	"splice-reports/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FilterRepository interface {
	Create(ctx context.Context, filter *Filter) error
	Get(ctx context.Context, id string) (*Filter, error)
	List(ctx context.Context) ([]Filter, error)
	UpdateNameDescription(ctx context.Context, id string, name, description string) (*Filter, error)
	Delete(ctx context.Context, id string) error
}

type FilterRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewFilterRepository(db *database.MongodbDB, cfg *config.Config) FilterRepository {
	return &FilterRepositoryImpl{
		Collection: db.DB.Collection(cfg.FilterCollection),
	}
}

func (r *FilterRepositoryImpl) Create(ctx context.Context, filter *Filter) error {
	if filter.ID.IsZero() {
		filter.ID = primitive.NewObjectID()
	}
	filter.CreatedAt = time.Now()
	filter.UpdatedAt = time.Now()

	_, err := r.Collection.InsertOne(ctx, filter)
	return err
}

func (r *FilterRepositoryImpl) Get(ctx context.Context, id string) (*Filter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var filter Filter
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&filter); err != nil {
		return nil, err
	}

	return &filter, nil
}

func (r *FilterRepositoryImpl) List(ctx context.Context) ([]Filter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var filters []Filter
	if err := cursor.All(ctx, &filters); err != nil {
		return nil, err
	}

	return filters, nil
}

// UpdateNameDescription updates the only fields that may change after
// creation. Everything else keeps its stored value.
func (r *FilterRepositoryImpl) UpdateNameDescription(ctx context.Context, id string, name, description string) (*Filter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"updated_at": time.Now()}
	if name != "" {
		update["name"] = name
	}
	update["description"] = description

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Filter
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *FilterRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
