package mulu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient(url, 34, 0)
	c.backoff = utils.BackoffConfig{MinDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Expo: 2}
	return c
}

func TestSeats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tourAvasShort", r.URL.Path)
		assert.Equal(t, "34", r.URL.Query().Get("guided_tour_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"from":1730557800,"av_part":12},{"from":1730644200,"av_part":0}]`))
	}))
	defer srv.Close()

	seats, err := newTestClient(srv.URL).Seats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.MuluSeat{{From: 1730557800, AvPart: 12}, {From: 1730644200, AvPart: 0}}, seats)
}

func TestSeatsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"from":1,"av_part":2}]`))
	}))
	defer srv.Close()

	seats, err := newTestClient(srv.URL).Seats(context.Background())
	require.NoError(t, err)
	assert.Len(t, seats, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSeatsDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Seats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSeatsByStart(t *testing.T) {
	idx := SeatsByStart([]types.MuluSeat{{From: 10, AvPart: 3}, {From: 20, AvPart: 0}})
	assert.Equal(t, map[int64]int{10: 3, 20: 0}, idx)
}
