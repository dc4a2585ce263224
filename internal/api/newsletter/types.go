package newsletter

import (
	"time"

	"github.com/petruschka/site-api/internal/types"
)

const (
	StatusQueued        = "queued"
	maxSubscribeRetries = 3
)

// SubscriptionJob is one queued newsletter signup.
type SubscriptionJob struct {
	JobID        string
	Subscription types.NewsletterSubscription
	CreatedAt    time.Time
	RetryCount   int // attempts after the first, capped at maxSubscribeRetries
}
