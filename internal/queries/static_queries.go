package queries

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StaffCollection     = "staff"
	LocationsCollection = "locations"
	PressCollection     = "press_view"
	SponsorsCollection  = "sponsors"

	// PressSourceCollection backs the read-only press_view.
	PressSourceCollection = "press"
)

// StaticQueries reads the mostly static site content.
type StaticQueries struct {
	db         *loaders.MongoClient
	staticDB   string
	sponsorsDB string
}

func NewStaticQueries(db *loaders.MongoClient, staticDB, sponsorsDB string) *StaticQueries {
	return &StaticQueries{db: db, staticDB: staticDB, sponsorsDB: sponsorsDB}
}

// Staff returns active members ordered by their display order.
func (q *StaticQueries) Staff(ctx context.Context) ([]types.StaffDoc, error) {
	filter := bson.M{"active": bson.M{"$ne": false}}
	opts := options.Find().SetSort(bson.D{
		{Key: "sortOrder", Value: 1},
		{Key: "order", Value: 1},
		{Key: "name", Value: 1},
	})
	return findAll[types.StaffDoc](ctx, q.db, q.staticDB, StaffCollection, filter, opts)
}

// SetStaffField sets one field of the member with the given name and
// reports how many documents matched.
func (q *StaticQueries) SetStaffField(ctx context.Context, name, field string, value any) (int64, error) {
	ctx, cancel := q.db.WithTimeout(ctx)
	defer cancel()

	res, err := q.db.Collection(q.staticDB, StaffCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return 0, fmt.Errorf("update staff %q: %w", name, err)
	}
	return res.MatchedCount, nil
}

// LocationByName matches the name case-insensitively and exactly.
func (q *StaticQueries) LocationByName(ctx context.Context, name string) (*types.LocationDoc, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: ExactNamePattern(name), Options: "i"}}
	return findOne[types.LocationDoc](ctx, q.db, q.staticDB, LocationsCollection, filter)
}

// ExactNamePattern anchors the regex-escaped name.
func ExactNamePattern(name string) string {
	return "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$"
}

func (q *StaticQueries) Press(ctx context.Context) ([]types.PressDoc, error) {
	return findAll[types.PressDoc](ctx, q.db, q.staticDB, PressCollection, bson.M{})
}

// UpsertPress replaces the press entry with the same _id in the collection
// behind press_view.
func (q *StaticQueries) UpsertPress(ctx context.Context, doc types.PressDoc) error {
	ctx, cancel := q.db.WithTimeout(ctx)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := q.db.Collection(q.staticDB, PressSourceCollection).ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("upsert press %v: %w", doc.ID, err)
	}
	return nil
}

func (q *StaticQueries) Sponsors(ctx context.Context) ([]types.SponsorDoc, error) {
	return findAll[types.SponsorDoc](ctx, q.db, q.sponsorsDB, SponsorsCollection, bson.M{})
}
