package newsletter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petruschka/site-api/internal/types"
)

// FormForwarder posts subscriptions as form data to an external mailing
// list endpoint.
type FormForwarder struct {
	client *http.Client
	url    string
}

func NewFormForwarder(target string) *FormForwarder {
	return &FormForwarder{
		client: &http.Client{Timeout: 15 * time.Second},
		url:    target,
	}
}

func (f *FormForwarder) Forward(ctx context.Context, sub types.NewsletterSubscription) error {
	form := url.Values{}
	form.Set("firstName", sub.FirstName)
	form.Set("lastName", sub.LastName)
	form.Set("email", sub.Email)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create forward request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to forward subscription: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("forward endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
