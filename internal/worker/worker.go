package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mdYeasin2001/hire-vibe-server/internal/worker/domain"
	"github.com/mdYeasin2001/hire-vibe-server/shared/rabbitmq"
)

// NotificationStore is the persistence surface the notifier depends on
type NotificationStore interface {
	GetJobSummary(ctx context.Context, jobID string) (*domain.JobSummary, error)
	InsertNotification(ctx context.Context, n *domain.Notification) error
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	Storage       NotificationStore
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	HandleTimeout time.Duration
	PrefetchCount int
}

// Worker consumes application events and fans them out to a pool of
// goroutines that write notifications
type Worker struct {
	logger        *slog.Logger
	storage       NotificationStore
	rabbitClient  *rabbitmq.Client
	concurrency   int
	handleTimeout time.Duration
	prefetchCount int
	workerID      string
	eventsChan    chan *domain.EventMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "notifier"
	}

	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = cfg.Concurrency
	}

	return &Worker{
		logger:        cfg.Logger,
		storage:       cfg.Storage,
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		handleTimeout: cfg.HandleTimeout,
		prefetchCount: prefetch,
		workerID:      fmt.Sprintf("%s-%s", hostname, uuid.New().String()[:8]),
		eventsChan:    make(chan *domain.EventMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start begins consuming and processing events. Blocks until the context is
// canceled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("handle_timeout", w.handleTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to setup consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker pool
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
