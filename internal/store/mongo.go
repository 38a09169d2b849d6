package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements DocumentStore on a MongoDB database.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a new MongoStore
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Get retrieves a single document by id.
func (s *MongoStore) Get(ctx context.Context, collection, id string) (bson.Raw, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Set writes the full document under id, creating it if absent.
func (s *MongoStore) Set(ctx context.Context, collection, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	return err
}

// UpdateFields applies a partial $set update, leaving other fields alone.
func (s *MongoStore) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddToSet adds value to the named array field without duplicating it.
func (s *MongoStore) AddToSet(ctx context.Context, collection, id, field string, value any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveFromSet removes value from the named array field.
func (s *MongoStore) RemoveFromSet(ctx context.Context, collection, id, field string, value any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Increment atomically adds each delta to its (possibly dotted) field.
func (s *MongoStore) Increment(ctx context.Context, collection, id string, deltas map[string]int64) error {
	inc := bson.M{}
	for field, delta := range deltas {
		inc[field] = delta
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": inc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document by id.
func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Query runs a filtered find and returns the raw matching documents.
func (s *MongoStore) Query(ctx context.Context, collection string, filters []Filter, opts Options) ([]bson.Raw, error) {
	filter, err := mongoFilter(filters)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find()
	if opts.Sort != "" {
		dir := 1
		if opts.Desc {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.Sort, Value: dir}})
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.Raw
	for cursor.Next(ctx) {
		// cursor.Current is reused between iterations; copy it out.
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)
		docs = append(docs, raw)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func mongoFilter(filters []Filter) (bson.M, error) {
	filter := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case Eq:
			filter[f.Field] = f.Value
		case In:
			filter[f.Field] = bson.M{"$in": f.Value}
		case Gte:
			filter[f.Field] = bson.M{"$gte": f.Value}
		case Lte:
			filter[f.Field] = bson.M{"$lte": f.Value}
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return filter, nil
}
