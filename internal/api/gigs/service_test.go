package gigs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/clock"
	"github.com/petruschka/site-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStore struct {
	templates []types.GigTemplateDoc
	raw       []bson.M
	legacy    map[string]types.EventDetailDoc
	premieres []types.PremiereDoc
	err       error
}

func (f *fakeStore) Templates(context.Context, string) ([]types.GigTemplateDoc, error) {
	return f.templates, f.err
}

func (f *fakeStore) RawTemplates(context.Context, string) ([]bson.M, error) {
	return f.raw, f.err
}

func (f *fakeStore) PastTemplates(context.Context) ([]types.GigTemplateDoc, error) {
	return f.templates, f.err
}

func (f *fakeStore) TemplateByID(_ context.Context, id string) (*types.GigTemplateDoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.templates {
		if t.TemplateID() == id {
			return &t, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeStore) LegacyEventByID(_ context.Context, id string) (*types.EventDetailDoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.legacy[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &doc, nil
}

func (f *fakeStore) UpcomingPremieres(context.Context) ([]types.PremiereDoc, error) {
	return f.premieres, f.err
}

type fakeSeats struct {
	seats []types.MuluSeat
	err   error
}

func (f fakeSeats) Seats(context.Context) ([]types.MuluSeat, error) {
	return f.seats, f.err
}

func newTestService(store Store, seats SeatSource) *Service {
	return NewService(store, seats, testBuilder(), clock.NewFixed(testNow), proxy)
}

func TestServiceUpcoming(t *testing.T) {
	store := &fakeStore{templates: []types.GigTemplateDoc{autumnTemplate()}}

	t.Run("annotates seats", func(t *testing.T) {
		svc := newTestService(store, fakeSeats{seats: []types.MuluSeat{{From: autumnLater.Unix(), AvPart: 7}}})
		gigs, err := svc.Upcoming(context.Background())
		require.NoError(t, err)
		require.Len(t, gigs, 2)
		assert.Nil(t, gigs[0].AvailableSeats)
		require.NotNil(t, gigs[1].AvailableSeats)
		assert.Equal(t, 7, *gigs[1].AvailableSeats)
	})

	t.Run("seat failure is ignored", func(t *testing.T) {
		svc := newTestService(store, fakeSeats{err: types.ErrUnavailable})
		gigs, err := svc.Upcoming(context.Background())
		require.NoError(t, err)
		assert.Len(t, gigs, 2)
	})

	t.Run("template failure fails the listing", func(t *testing.T) {
		svc := newTestService(&fakeStore{err: errors.New("connection refused")}, nil)
		_, err := svc.Upcoming(context.Background())
		assert.Error(t, err)
	})
}

func TestServiceGig(t *testing.T) {
	legacy := types.EventDetailDoc{
		ID:         "9001",
		Start:      autumnShow,
		EventInfos: []types.EventInfoDoc{{LanguageID: int32(0), Name: "Legacy Show"}},
	}
	store := &fakeStore{
		templates: []types.GigTemplateDoc{autumnTemplate()},
		legacy:    map[string]types.EventDetailDoc{"9001": legacy},
	}
	svc := newTestService(store, nil)
	ctx := context.Background()

	gig, err := svc.Gig(ctx, "2024h@2024-10-12T13:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, autumnShow.UnixMilli(), gig.StartTimestamp)

	gig, err = svc.Gig(ctx, "9001")
	require.NoError(t, err)
	assert.Equal(t, "Legacy Show", gig.Title)

	gig, err = svc.Gig(ctx, "2024h")
	require.NoError(t, err)
	assert.Equal(t, "2024h@2024-10-19T08:30:00Z", gig.ID)

	gig, err = svc.Gig(ctx, "69304")
	require.NoError(t, err)
	assert.Equal(t, "2024h@2024-10-12T13:00:00Z", gig.ID)

	_, err = svc.Gig(ctx, "unknown@2024-10-12T13:00:00Z")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = svc.Gig(ctx, "12345")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = svc.Gig(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestServiceUpdatesFallback(t *testing.T) {
	updates, err := newTestService(&fakeStore{}, nil).Updates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Update{FallbackUpdate}, updates)
}

func TestServicePastEvent(t *testing.T) {
	tmpl := autumnTemplate()
	tmpl.PremiereDate = autumnEarly
	store := &fakeStore{
		templates: []types.GigTemplateDoc{tmpl},
		legacy: map[string]types.EventDetailDoc{"2019s": {
			ID:         "2019s",
			Start:      "2019-06-01T12:00:00Z",
			EventInfos: []types.EventInfoDoc{{LanguageID: int32(0), Name: "Alt"}},
		}},
	}
	svc := newTestService(store, nil)

	gig, err := svc.PastEvent(context.Background(), "2024h")
	require.NoError(t, err)
	assert.Equal(t, "2024h", gig.ID)

	gig, err = svc.PastEvent(context.Background(), "2019s")
	require.NoError(t, err)
	assert.Equal(t, "Petruschka Theater", gig.Venue)

	_, err = svc.PastEvent(context.Background(), "1999w")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), svc)
	return r
}

func TestRoutes(t *testing.T) {
	store := &fakeStore{
		templates: []types.GigTemplateDoc{autumnTemplate()},
		raw: []bson.M{{
			"_id":          "2024h",
			"premiereDate": primitive.NewDateTimeFromTime(autumnShow),
		}},
	}
	r := newTestRouter(newTestService(store, fakeSeats{}))

	t.Run("gigs", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gigs", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body types.ApiResponse[[]types.Gig]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Len(t, body.Data, 2)
		assert.False(t, body.Timestamp.IsZero())
	})

	t.Run("gig by composite key", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gig/2024h@2024-10-19T08:30:00Z", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body types.ApiResponse[types.Gig]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "10:30", body.Data.Time)
	})

	t.Run("missing gig is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gig/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("gig templates normalize dates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gig-templates", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"premiereDate":"2024-10-12T13:00:00Z"`)
	})

	t.Run("query failure is 500", func(t *testing.T) {
		failing := newTestRouter(newTestService(&fakeStore{err: errors.New("timeout")}, nil))
		for _, path := range []string{"/api/v1/gigs", "/api/v1/past-events", "/api/v1/updates", "/api/v1/gig-templates", "/api/v1/gig/abc"} {
			rec := httptest.NewRecorder()
			failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		}
	})

	t.Run("blank id is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/past-event/%20", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
