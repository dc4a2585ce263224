// Package mulu reads seat availability from the MULU ticketing feed.
package mulu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://mulu.visitate.net/service/web/infofeed/public"
	fetchAttempts  = 3
)

// statusError is returned for non-200 upstream responses.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("MULU API returned status %d: %s", e.code, e.body)
}

// Client fetches the tourAvasShort feed for one guided tour.
type Client struct {
	client  *http.Client
	baseURL string
	tourID  int
	limiter *rate.Limiter
	backoff utils.BackoffConfig
}

// NewClient limits outbound calls to perSecond requests per second.
// A non-positive rate disables limiting.
func NewClient(baseURL string, tourID int, perSecond float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tourID:  tourID,
		limiter: rate.NewLimiter(limit, 1),
		backoff: utils.DefaultBackoffConfig,
	}
}

// Seats returns the availability records. Transport errors and 5xx responses
// are retried with exponential backoff.
func (c *Client) Seats(ctx context.Context) ([]types.MuluSeat, error) {
	var seats []types.MuluSeat
	err := utils.Retry(ctx, fetchAttempts, utils.NewExpBackoffWithConfig(c.backoff), retryable, func() error {
		var err error
		seats, err = c.fetch(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	utils.Zlog.Debug("Fetched MULU seat records", zap.Int("records", len(seats)))
	return seats, nil
}

func (c *Client) fetch(ctx context.Context) ([]types.MuluSeat, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/tourAvasShort?guided_tour_id=%s", c.baseURL, strconv.Itoa(c.tourID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: string(body)}
	}

	seats := []types.MuluSeat{}
	if err := json.NewDecoder(resp.Body).Decode(&seats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return seats, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return true
}

// SeatsByStart indexes available seats by start time in unix seconds.
func SeatsByStart(seats []types.MuluSeat) map[int64]int {
	out := make(map[int64]int, len(seats))
	for _, s := range seats {
		out[s.From] = s.AvPart
	}
	return out
}
