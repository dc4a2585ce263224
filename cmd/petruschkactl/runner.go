package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/petruschka/site-api/internal/api/gigs"
	"github.com/petruschka/site-api/internal/config"
	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/locale"
	"github.com/petruschka/site-api/internal/queries"
	"github.com/petruschka/site-api/internal/utils"
	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var errStaffNotFound = errors.New("no staff member with that name")

// Runner connects on first use so --help works without a database.
type Runner struct {
	out io.Writer
	cfg *config.Config
	db  *loaders.MongoClient
}

func NewRunner(out io.Writer) *Runner {
	return &Runner{out: out}
}

func (r *Runner) connect(ctx context.Context) error {
	if r.db != nil {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := loaders.NewMongoClient(ctx, cfg.MongoURI, cfg.QueryTimeout)
	if err != nil {
		return err
	}
	r.cfg, r.db = cfg, db
	return nil
}

func (r *Runner) Close() {
	if r.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.db.Close(ctx); err != nil {
		utils.Zlog.Warn("Failed to disconnect", zap.Error(err))
	}
}

func (r *Runner) writePlain(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) Ping(ctx context.Context, _ *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	for _, database := range []string{r.cfg.EventDB, r.cfg.StaticDB, r.cfg.SponsorsDB} {
		counts, err := r.db.Counts(ctx, database)
		if err != nil {
			return err
		}
		r.writePlain("%s\n", database)
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			r.writePlain("  %-28s %d\n", name, counts[name])
		}
	}
	return nil
}

func (r *Runner) GigsUpcoming(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	templates, err := queries.NewGigQueries(r.db, r.cfg.EventDB).Templates(ctx, queries.ShowTrackers)
	if err != nil {
		return err
	}
	builder := gigs.NewBuilder(locale.NewFormatter(r.cfg.TimeZone))
	upcoming := builder.ExpandUpcoming(templates, time.Now().UTC())

	if cmd.Bool("json") {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(upcoming)
	}
	for _, g := range upcoming {
		r.writePlain("%-40s %s  %s (%s)\n", g.ID, g.EventDateString, g.Title, g.Venue)
	}
	r.writePlain("%d upcoming gigs from %d templates\n", len(upcoming), len(templates))
	return nil
}

func (r *Runner) GigsAddTestDate(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	templateID := cmd.String("template")
	newID := cmd.String("id")
	if newID == "" {
		newID = templateID + "-test"
	}

	q := queries.NewGigQueries(r.db, r.cfg.EventDB)
	source, err := q.RawTemplateByID(ctx, templateID)
	if err != nil {
		return fmt.Errorf("template %s: %w", templateID, err)
	}

	start := time.Now().UTC().AddDate(0, int(cmd.Int("months")), 0).Truncate(time.Minute)
	clone := cloneWithDate(source, newID, start, locale.NewFormatter(r.cfg.TimeZone))
	if err := q.InsertTemplate(ctx, clone); err != nil {
		return err
	}
	r.writePlain("Added %s with a date on %s\n", newID, start.Format(time.RFC3339))
	return nil
}

// cloneWithDate copies template under newID, marks it as a test and appends
// a one hour event date at start.
func cloneWithDate(template bson.M, newID string, start time.Time, f *locale.Formatter) bson.M {
	clone := make(bson.M, len(template))
	for k, v := range template {
		clone[k] = v
	}
	clone["_id"] = newID
	if name, ok := clone["name"].(string); ok {
		clone["name"] = name + " - TESTING"
	}

	date := bson.M{
		"start":           primitive.NewDateTimeFromTime(start),
		"end":             primitive.NewDateTimeFromTime(start.Add(time.Hour)),
		"eventDateString": f.Long(start),
	}
	var dates primitive.A
	switch existing := clone["eventDates"].(type) {
	case primitive.A:
		dates = append(dates, existing...)
	case []any:
		dates = append(dates, existing...)
	}
	clone["eventDates"] = append(dates, date)
	return clone
}

func (r *Runner) StaffDeactivate(ctx context.Context, cmd *cli.Command) error {
	return r.setStaffField(ctx, cmd.String("name"), "active", false)
}

func (r *Runner) StaffSet(ctx context.Context, cmd *cli.Command) error {
	return r.setStaffField(ctx, cmd.String("name"), cmd.String("field"), parseValue(cmd.String("value")))
}

func (r *Runner) setStaffField(ctx context.Context, name, field string, value any) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	matched, err := queries.NewStaticQueries(r.db, r.cfg.StaticDB, r.cfg.SponsorsDB).SetStaffField(ctx, name, field, value)
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("%w: %q", errStaffNotFound, name)
	}
	r.writePlain("Set %s of %s to %v\n", field, name, value)
	return nil
}

// parseValue types booleans and integers so flags like --value 3 land as
// numbers in Mongo.
func parseValue(raw string) any {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return n
	}
	return raw
}
