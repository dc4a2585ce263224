package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NewsletterCollection = "newsletter"

type NewsletterQueries struct {
	db       *loaders.MongoClient
	staticDB string
}

func NewNewsletterQueries(db *loaders.MongoClient, staticDB string) *NewsletterQueries {
	return &NewsletterQueries{db: db, staticDB: staticDB}
}

// Upsert stores the subscription keyed by lower-cased email.
func (q *NewsletterQueries) Upsert(ctx context.Context, doc types.NewsletterDoc) error {
	ctx, cancel := q.db.WithTimeout(ctx)
	defer cancel()

	doc.Email = strings.ToLower(strings.TrimSpace(doc.Email))
	opts := options.Replace().SetUpsert(true)
	_, err := q.db.Collection(q.staticDB, NewsletterCollection).ReplaceOne(ctx, bson.M{"email": doc.Email}, doc, opts)
	if err != nil {
		return fmt.Errorf("upsert newsletter subscription: %w", err)
	}
	return nil
}
