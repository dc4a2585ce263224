package newsletter

import (
	"context"
	"sync"
	"time"

	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

const jobTimeout = 30 * time.Second

// defaultRetryBackoff spaces the retries of a failed job so they do not all
// land inside the same outage.
var defaultRetryBackoff = utils.BackoffConfig{
	MinDelay: 2 * time.Second,
	MaxDelay: 30 * time.Second,
	Expo:     2.0,
	Jitter:   0.1,
}

type WorkerPool struct {
	jobs         chan SubscriptionJob
	quit         chan struct{}
	started      bool
	stopOnce     sync.Once
	wg           sync.WaitGroup
	numWorkers   int
	retryBackoff utils.BackoffConfig
	processFunc  func(ctx context.Context, job SubscriptionJob) error
}

func NewWorkerPool(numWorkers int, queueCapacity int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueCapacity <= 0 {
		queueCapacity = 100
	}
	return &WorkerPool{
		jobs:         make(chan SubscriptionJob, queueCapacity),
		quit:         make(chan struct{}),
		numWorkers:   numWorkers,
		retryBackoff: defaultRetryBackoff,
	}
}

func (wp *WorkerPool) SetRetryBackoff(config utils.BackoffConfig) {
	wp.retryBackoff = config
}

func (wp *WorkerPool) SetProcessFunc(fn func(ctx context.Context, job SubscriptionJob) error) {
	wp.processFunc = fn
}

func (wp *WorkerPool) Start() {
	if wp.started {
		return
	}
	wp.started = true
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func(workerID int) {
			defer wp.wg.Done()
			utils.Zlog.Info("Worker started", zap.Int("workerId", workerID))
			for {
				select {
				case <-wp.quit:
					utils.Zlog.Info("Worker stopping", zap.Int("workerId", workerID))
					return
				case job := <-wp.jobs:
					wp.process(workerID, job)
				}
			}
		}(i + 1)
	}
}

// Stop signals the workers and waits for them until ctx is done. Jobs still
// queued are dropped.
func (wp *WorkerPool) Stop(ctx context.Context) {
	if !wp.started {
		return
	}
	wp.stopOnce.Do(func() { close(wp.quit) })
	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		utils.Zlog.Warn("Timeout waiting for workers to stop")
	case <-done:
		utils.Zlog.Info("All workers stopped")
	}
}

// Enqueue never blocks; it reports false when the pool is stopping or the
// queue is full.
func (wp *WorkerPool) Enqueue(job SubscriptionJob) bool {
	select {
	case <-wp.quit:
		return false
	default:
	}
	select {
	case wp.jobs <- job:
		return true
	default:
		return false
	}
}

func (wp *WorkerPool) process(workerID int, job SubscriptionJob) {
	if wp.processFunc == nil {
		return
	}
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	err := wp.processFunc(ctx, job)
	if err == nil {
		utils.Zlog.Info("Processed newsletter job",
			zap.Int("workerId", workerID),
			zap.String("jobId", job.JobID),
			zap.Duration("duration", time.Since(start)))
		return
	}

	utils.Zlog.Error("Newsletter job failed",
		zap.Int("workerId", workerID),
		zap.String("jobId", job.JobID),
		zap.Int("retryCount", job.RetryCount),
		zap.Error(err))
	wp.requeue(workerID, job)
}

func (wp *WorkerPool) requeue(workerID int, job SubscriptionJob) {
	if job.RetryCount >= maxSubscribeRetries {
		utils.Zlog.Error("Max retries exceeded for newsletter job, dropping",
			zap.Int("workerId", workerID),
			zap.String("jobId", job.JobID),
			zap.Int("retryCount", job.RetryCount))
		return
	}

	job.RetryCount++
	delay := wp.retryDelay(job.RetryCount)
	utils.Zlog.Info("Scheduling newsletter job retry",
		zap.Int("workerId", workerID),
		zap.String("jobId", job.JobID),
		zap.Int("retryCount", job.RetryCount),
		zap.Duration("delay", delay))

	// The wait runs beside the worker so it keeps draining the queue.
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-wp.quit:
			utils.Zlog.Warn("Dropping pending newsletter retry on shutdown",
				zap.String("jobId", job.JobID))
			return
		case <-timer.C:
		}

		if ok := wp.Enqueue(job); !ok {
			utils.Zlog.Error("Failed to requeue newsletter job (queue full or stopping)",
				zap.Int("workerId", workerID),
				zap.String("jobId", job.JobID))
			return
		}
		utils.Zlog.Info("Requeued newsletter job for retry",
			zap.Int("workerId", workerID),
			zap.String("jobId", job.JobID),
			zap.Int("retryCount", job.RetryCount))
	}()
}

// retryDelay is the backoff step for the given retry, counting from 1.
func (wp *WorkerPool) retryDelay(retry int) time.Duration {
	b := utils.NewExpBackoffWithConfig(wp.retryBackoff)
	delay := b.Next()
	for i := 1; i < retry; i++ {
		delay = b.Next()
	}
	return delay
}
