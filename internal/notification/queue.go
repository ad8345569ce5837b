package notification

import (
	"context"
	"log/slog"
	"sync"
)

// Sender is the synchronous delivery used by queue workers.
type Sender interface {
	Send(ctx context.Context, msg Message) DeliveryReport
}

// Queue delivers messages in the background with a fixed worker pool.
type Queue struct {
	sender  Sender
	workers int
	logger  *slog.Logger

	jobs    chan Message
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
}

// NewQueue constructs a queue with bounded buffer.
func NewQueue(sender Sender, workers, size int, logger *slog.Logger) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	return &Queue{
		sender:  sender,
		workers: workers,
		logger:  logger,
		jobs:    make(chan Message, size),
	}
}

// Start launches background workers.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	q.cancel = cancel
	q.jobs = make(chan Message, cap(q.jobs))
	q.started = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(runCtx)
	}
}

// Enqueue schedules msg for delivery. It never blocks and reports false when the message was dropped.
func (q *Queue) Enqueue(msg Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.started {
		q.logger.Warn("notification queue not running, message dropped", slog.String("subject", msg.Subject))
		return false
	}

	select {
	case q.jobs <- msg:
		return true
	default:
		q.logger.Warn("notification queue full, message dropped", slog.String("subject", msg.Subject))
		return false
	}
}

// Stop drains queued messages and waits for workers to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.started = false
	close(q.jobs)
	cancel := q.cancel
	q.mu.Unlock()

	q.wg.Wait()
	if cancel != nil {
		cancel()
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for msg := range q.jobs {
		q.sender.Send(ctx, msg)
	}
}
