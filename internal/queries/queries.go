// Package queries holds the MongoDB reads and writes behind each API feature.
package queries

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// findAll decodes every document matching filter into T. Documents that
// do not decode are logged and skipped.
func findAll[T any](ctx context.Context, db *loaders.MongoClient, database, collection string, filter any, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()

	cursor, err := db.Collection(database, collection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s.%s: %w", database, collection, err)
	}
	defer cursor.Close(ctx)

	return decodeAll[T](ctx, cursor, database+"."+collection)
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor, source string) ([]T, error) {
	docs := []T{}
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			utils.Zlog.Warn("Skipping undecodable document",
				zap.String("source", source),
				zap.Stringer("id", cursor.Current.Lookup("_id")),
				zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return docs, nil
}

// findOne returns types.ErrNotFound when nothing matches.
func findOne[T any](ctx context.Context, db *loaders.MongoClient, database, collection string, filter any) (*T, error) {
	ctx, cancel := db.WithTimeout(ctx)
	defer cancel()

	var doc T
	if err := db.Collection(database, collection).FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

// idFilter matches documents whose _id is either the string or its numeric form.
func idFilter(id string) bson.M {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, n, int32(n)}}}
	}
	return bson.M{"_id": id}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.ErrNotFound
	}
	return err
}
