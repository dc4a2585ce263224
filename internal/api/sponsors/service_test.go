package sponsors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageBase = "https://www.petruschka.ch/assets/images/sponsoren/sponsors_"

type fakeStore struct {
	docs []types.SponsorDoc
	err  error
}

func (f fakeStore) Sponsors(context.Context) ([]types.SponsorDoc, error) {
	return f.docs, f.err
}

func TestSizeClass(t *testing.T) {
	tests := []struct {
		share float64
		want  string
	}{
		{0.45, "sponsor-xl"},
		{0.3, "sponsor-xl"},
		{0.25, "sponsor-lg"},
		{0.15, "sponsor-md"},
		{0.12, "sponsor-sm"},
		{0.0999, "sponsor-xs"},
		{0, "sponsor-xs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SizeClass(tt.share), "share %v", tt.share)
	}
}

func TestAverageShare(t *testing.T) {
	assert.Zero(t, AverageShare(nil))
	assert.InDelta(t, 0.2, AverageShare([]types.SponsorEvent{
		{Event: "2023h", Share: 0.1},
		{Event: "2024s", Share: 0.3},
	}), 1e-9)
}

func TestList(t *testing.T) {
	store := fakeStore{docs: []types.SponsorDoc{
		{ID: "s1", Name: "Gemeinde Muri", Events: []types.SponsorEvent{{Event: "2024h", Share: 0.1}}},
		{Name: "Burgergemeinde", URL: "https://bgbern.ch", Image: "bgb.png", Events: []types.SponsorEvent{
			{Event: "2023h", Share: 0.4},
			{Event: "2024h", Share: 0.3},
		}},
		{ID: "s3", Name: "Kleinspende"},
	}}

	sponsors, err := NewService(store, imageBase).List(context.Background())
	require.NoError(t, err)
	require.Len(t, sponsors, 3)

	top := sponsors[0]
	assert.Equal(t, "Burgergemeinde", top.ID)
	assert.Equal(t, imageBase+"bgb.png?nf_resize=fit&w=200", top.Image)
	assert.InDelta(t, 0.35, top.TotalShare, 1e-9)
	assert.Equal(t, "sponsor-xl", top.SizeClass)

	assert.Equal(t, "s1", sponsors[1].ID)
	assert.Equal(t, "#", sponsors[1].URL)
	assert.Equal(t, PlaceholderImage, sponsors[1].Image)
	assert.Equal(t, "sponsor-sm", sponsors[1].SizeClass)

	assert.Equal(t, "s3", sponsors[2].ID)
	assert.NotNil(t, sponsors[2].Events)
	assert.Equal(t, "sponsor-xs", sponsors[2].SizeClass)
}

func TestListRouteDegradesToEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), NewService(fakeStore{err: errors.New("no route to host")}, imageBase))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sponsors", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    []types.Sponsor `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
}
