package gigs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/petruschka/site-api/internal/clock"
	"github.com/petruschka/site-api/internal/eventdate"
	"github.com/petruschka/site-api/internal/eventid"
	"github.com/petruschka/site-api/internal/mulu"
	"github.com/petruschka/site-api/internal/queries"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is the subset of queries.GigQueries the service reads from.
type Store interface {
	Templates(ctx context.Context, pattern string) ([]types.GigTemplateDoc, error)
	RawTemplates(ctx context.Context, pattern string) ([]bson.M, error)
	PastTemplates(ctx context.Context) ([]types.GigTemplateDoc, error)
	TemplateByID(ctx context.Context, id string) (*types.GigTemplateDoc, error)
	LegacyEventByID(ctx context.Context, id string) (*types.EventDetailDoc, error)
	UpcomingPremieres(ctx context.Context) ([]types.PremiereDoc, error)
}

// SeatSource reports MULU seat availability.
type SeatSource interface {
	Seats(ctx context.Context) ([]types.MuluSeat, error)
}

type Service struct {
	store      Store
	seats      SeatSource
	builder    *Builder
	clock      clock.Clock
	imageProxy string
}

func NewService(store Store, seats SeatSource, builder *Builder, clk clock.Clock, imageProxy string) *Service {
	return &Service{store: store, seats: seats, builder: builder, clock: clk, imageProxy: imageProxy}
}

// Upcoming expands all show templates into future gigs and annotates them
// with MULU seat counts. A MULU failure only drops the annotation.
func (s *Service) Upcoming(ctx context.Context) ([]types.Gig, error) {
	var (
		templates []types.GigTemplateDoc
		seats     []types.MuluSeat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = s.store.Templates(gctx, queries.ShowTrackers)
		if err != nil {
			return fmt.Errorf("failed to load gig templates: %w", err)
		}
		return nil
	})
	if s.seats != nil {
		g.Go(func() error {
			var err error
			seats, err = s.seats.Seats(gctx)
			if err != nil {
				utils.Zlog.Warn("Seat availability unavailable, continuing without", zap.Error(err))
				seats = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gigs := s.builder.ExpandUpcoming(templates, s.clock.Now())
	AnnotateSeats(gigs, mulu.SeatsByStart(seats))

	utils.Zlog.Debug("Expanded upcoming gigs",
		zap.Int("templates", len(templates)),
		zap.Int("gigs", len(gigs)),
		zap.Int("seatRecords", len(seats)))
	return gigs, nil
}

// Templates returns the raw show templates with every date rewritten as RFC3339.
func (s *Service) Templates(ctx context.Context) ([]any, error) {
	docs, err := s.store.RawTemplates(ctx, queries.ShowTrackers)
	if err != nil {
		return nil, fmt.Errorf("failed to load gig templates: %w", err)
	}
	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, eventdate.Normalize(doc))
	}
	return out, nil
}

// Gig resolves a composite key, a legacy EventDetails id, a template id or a
// legacy numeric event id, in that order.
func (s *Service) Gig(ctx context.Context, id string) (*types.Gig, error) {
	now := s.clock.Now()

	if templateID, start, ok := eventid.ParseKey(id); ok {
		t, err := s.store.TemplateByID(ctx, templateID)
		if err != nil {
			return nil, err
		}
		return s.builder.DetailFromTemplate(*t, &start, now)
	}

	doc, err := s.store.LegacyEventByID(ctx, id)
	switch {
	case err == nil:
		return s.builder.DetailFromLegacy(*doc, false)
	case !errors.Is(err, types.ErrNotFound):
		return nil, err
	}

	t, err := s.store.TemplateByID(ctx, id)
	switch {
	case err == nil:
		return s.builder.DetailFromTemplate(*t, nil, now)
	case !errors.Is(err, types.ErrNotFound):
		return nil, err
	}

	legacyID, convErr := strconv.ParseInt(id, 10, 64)
	if convErr != nil {
		return nil, types.ErrNotFound
	}
	return s.gigByLegacyID(ctx, legacyID, now)
}

// gigByLegacyID scans every template instance for the numeric id links used
// to carry.
func (s *Service) gigByLegacyID(ctx context.Context, legacyID int64, now time.Time) (*types.Gig, error) {
	templates, err := s.store.Templates(ctx, queries.ShowTrackers)
	if err != nil {
		return nil, fmt.Errorf("failed to load gig templates: %w", err)
	}
	for _, t := range templates {
		for _, gig := range s.builder.ExpandAll([]types.GigTemplateDoc{t}) {
			if gig.LegacyID != legacyID {
				continue
			}
			start := gig.Start()
			return s.builder.DetailFromTemplate(t, &start, now)
		}
	}
	return nil, types.ErrNotFound
}

func (s *Service) PastEvents(ctx context.Context) ([]types.PastEvent, error) {
	templates, err := s.store.PastTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load past templates: %w", err)
	}
	return s.builder.PastEvents(templates, s.clock.Now(), s.imageProxy), nil
}

// PastEvent prefers the template's premiere and falls back to EventDetails.
func (s *Service) PastEvent(ctx context.Context, id string) (*types.Gig, error) {
	t, err := s.store.TemplateByID(ctx, id)
	if err == nil {
		gig, buildErr := s.builder.PastDetailFromTemplate(*t)
		if buildErr == nil {
			return gig, nil
		}
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	doc, err := s.store.LegacyEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.builder.DetailFromLegacy(*doc, true)
}

// Updates announces recent premieres. An empty source yields FallbackUpdate.
func (s *Service) Updates(ctx context.Context) ([]types.Update, error) {
	premieres, err := s.store.UpcomingPremieres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load premieres: %w", err)
	}
	if len(premieres) == 0 {
		utils.Zlog.Info("No premiere data found, using fallback update")
		return []types.Update{FallbackUpdate}, nil
	}

	now := s.clock.Now()
	running := s.runningProductions(ctx, now)
	return s.builder.Updates(premieres, now, s.imageProxy, running), nil
}

// runningProductions loads the templates lazily, only when a past premiere
// needs checking.
func (s *Service) runningProductions(ctx context.Context, now time.Time) func(id, name string) bool {
	var (
		loaded bool
		ids    map[string]bool
		names  map[string]bool
	)
	return func(id, name string) bool {
		if !loaded {
			loaded = true
			ids, names = map[string]bool{}, map[string]bool{}
			templates, err := s.store.Templates(ctx, queries.ShowTrackers)
			if err != nil {
				utils.Zlog.Warn("Could not check running productions", zap.Error(err))
			}
			for _, gig := range s.builder.ExpandUpcoming(templates, now) {
				ids[gig.TemplateID] = true
				names[gig.Title] = true
			}
		}
		return ids[id] || names[name]
	}
}
