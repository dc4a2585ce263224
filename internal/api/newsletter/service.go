// Package newsletter accepts newsletter signups and stores them in the
// background.
package newsletter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/petruschka/site-api/internal/clock"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

type Store interface {
	Upsert(ctx context.Context, doc types.NewsletterDoc) error
}

// Forwarder hands a stored subscription to an external mailing list.
type Forwarder interface {
	Forward(ctx context.Context, sub types.NewsletterSubscription) error
}

type Service struct {
	store     Store
	forwarder Forwarder
	workers   *WorkerPool
	clock     clock.Clock
}

// NewService wires the service as the pool's process func. forwarder may be nil.
func NewService(store Store, forwarder Forwarder, workers *WorkerPool, clk clock.Clock) *Service {
	s := &Service{store: store, forwarder: forwarder, workers: workers, clock: clk}
	workers.SetProcessFunc(s.ProcessJob)
	return s
}

// Subscribe validates the signup and queues it, returning immediately.
func (s *Service) Subscribe(_ context.Context, sub types.NewsletterSubscription) (*types.NewsletterResponse, error) {
	sub = NormalizeSubscription(sub)
	if err := ValidateSubscription(sub); err != nil {
		return nil, err
	}

	job := SubscriptionJob{
		JobID:        uuid.New().String(),
		Subscription: sub,
		CreatedAt:    s.clock.Now(),
	}
	if ok := s.workers.Enqueue(job); !ok {
		return nil, fmt.Errorf("newsletter %w, try again later", types.ErrQueueFull)
	}

	utils.Zlog.Info("Enqueued newsletter job", zap.String("jobId", job.JobID))
	return &types.NewsletterResponse{
		JobID:   job.JobID,
		Status:  StatusQueued,
		Message: "Subscription queued for processing",
	}, nil
}

// ProcessJob stores the subscription and forwards it when a forwarder is set.
// It runs on the worker pool.
func (s *Service) ProcessJob(ctx context.Context, job SubscriptionJob) error {
	doc := types.NewsletterDoc{
		Email:        job.Subscription.Email,
		FirstName:    job.Subscription.FirstName,
		LastName:     job.Subscription.LastName,
		SubscribedAt: job.CreatedAt.UTC(),
		JobID:        job.JobID,
	}
	if err := s.store.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("store subscription: %w", err)
	}

	if s.forwarder != nil {
		if err := s.forwarder.Forward(ctx, job.Subscription); err != nil {
			return err
		}
	}
	return nil
}
