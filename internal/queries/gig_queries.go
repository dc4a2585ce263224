package queries

import (
	"context"
	"fmt"

	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	GigsCollection         = "Gigs"
	EventDetailsCollection = "EventDetails"
	PremieresCollection    = "UpcomingPremieres_all"

	// ShowTrackers selects the templates shown on the site.
	ShowTrackers = "CD|Tournee|Premiere"
)

type GigQueries struct {
	db      *loaders.MongoClient
	eventDB string
}

func NewGigQueries(db *loaders.MongoClient, eventDB string) *GigQueries {
	return &GigQueries{db: db, eventDB: eventDB}
}

// Templates returns the Gigs view documents whose analytics tracker matches pattern.
func (q *GigQueries) Templates(ctx context.Context, pattern string) ([]types.GigTemplateDoc, error) {
	filter := bson.M{"googleAnalyticsTracker": bson.M{"$regex": pattern, "$options": "i"}}
	return findAll[types.GigTemplateDoc](ctx, q.db, q.eventDB, GigsCollection, filter, byID())
}

// RawTemplates returns the Gigs view documents as stored.
func (q *GigQueries) RawTemplates(ctx context.Context, pattern string) ([]bson.M, error) {
	filter := bson.M{"googleAnalyticsTracker": bson.M{"$regex": pattern, "$options": "i"}}
	return q.db.Find(ctx, q.eventDB, GigsCollection, filter, byID())
}

// PastTemplates returns show templates that carry a premiere date.
func (q *GigQueries) PastTemplates(ctx context.Context) ([]types.GigTemplateDoc, error) {
	filter := bson.M{
		"premiereDate":           bson.M{"$exists": true},
		"googleAnalyticsTracker": bson.M{"$regex": ShowTrackers, "$options": "i"},
	}
	return findAll[types.GigTemplateDoc](ctx, q.db, q.eventDB, GigsCollection, filter, byID())
}

// TemplateByID matches the string id, or the numeric id when id parses as one.
func (q *GigQueries) TemplateByID(ctx context.Context, id string) (*types.GigTemplateDoc, error) {
	return findOne[types.GigTemplateDoc](ctx, q.db, q.eventDB, GigsCollection, idFilter(id))
}

// RawTemplateByID is TemplateByID without decoding into the typed model.
func (q *GigQueries) RawTemplateByID(ctx context.Context, id string) (bson.M, error) {
	doc, err := q.db.FindOne(ctx, q.eventDB, GigsCollection, idFilter(id))
	if err != nil {
		return nil, notFound(err)
	}
	return doc, nil
}

// LegacyEventByID reads one document from the EventDetails collection.
func (q *GigQueries) LegacyEventByID(ctx context.Context, id string) (*types.EventDetailDoc, error) {
	return findOne[types.EventDetailDoc](ctx, q.db, q.eventDB, EventDetailsCollection, idFilter(id))
}

func (q *GigQueries) UpcomingPremieres(ctx context.Context) ([]types.PremiereDoc, error) {
	return findAll[types.PremiereDoc](ctx, q.db, q.eventDB, PremieresCollection, bson.M{})
}

// InsertTemplate stores a new raw template document in the Gigs collection.
func (q *GigQueries) InsertTemplate(ctx context.Context, doc bson.M) error {
	ctx, cancel := q.db.WithTimeout(ctx)
	defer cancel()

	if _, err := q.db.Collection(q.eventDB, GigsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func byID() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}
