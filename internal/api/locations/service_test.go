package locations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	docs map[string]types.LocationDoc
	err  error
	seen []string
}

func (f *fakeStore) LocationByName(_ context.Context, name string) (*types.LocationDoc, error) {
	f.seen = append(f.seen, name)
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[strings.ToLower(name)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &doc, nil
}

func newStore(t *testing.T) *fakeStore {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex("650c1f2e9d3b4a5c6d7e8f90")
	require.NoError(t, err)
	return &fakeStore{docs: map[string]types.LocationDoc{
		"kellertheater bern": {
			ID:         oid,
			Name:       "Kellertheater Bern",
			Street:     "Junkerngasse 1",
			PostalCode: "3011",
			City:       "Bern",
			EfID:       int32(4711),
		},
	}}
}

func TestByName(t *testing.T) {
	store := newStore(t)
	svc := NewService(store)

	loc, err := svc.ByName(context.Background(), "  KELLERTHEATER BERN ")
	require.NoError(t, err)
	assert.Equal(t, "650c1f2e9d3b4a5c6d7e8f90", loc.ID.OID)
	assert.Equal(t, "Kellertheater Bern", loc.Name)
	assert.Equal(t, "4711", loc.EfID)
	assert.Equal(t, []string{"KELLERTHEATER BERN"}, store.seen)

	_, err = svc.ByName(context.Background(), " ")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = svc.ByName(context.Background(), "Nirgendwo")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		path       string
		storeErr   error
		wantStatus int
	}{
		{name: "escaped name", path: "/api/v1/location/Kellertheater%20Bern", wantStatus: http.StatusOK},
		{name: "blank name", path: "/api/v1/location/%20", wantStatus: http.StatusBadRequest},
		{name: "unknown", path: "/api/v1/location/Nirgendwo", wantStatus: http.StatusNotFound},
		{name: "query failure", path: "/api/v1/location/Bern", storeErr: errors.New("socket closed"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			store.err = tt.storeErr
			router := gin.New()
			RegisterRoutes(router.Group("/api/v1"), NewService(store))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["success"])
			if tt.wantStatus == http.StatusOK {
				data := body["data"].(map[string]any)
				assert.Equal(t, map[string]any{"$oid": "650c1f2e9d3b4a5c6d7e8f90"}, data["_id"])
			}
		})
	}
}

func TestGetRouteDecodesNameOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := newStore(t)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), NewService(store))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/location/Saal%2541", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, store.seen, 1)
	assert.Equal(t, "Saal%41", store.seen[0])
	assert.Contains(t, w.Body.String(), "Location 'Saal%41' not found")
}
