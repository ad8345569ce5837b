package test

import (
	"context"
	"sync"

	"github.com/polkiloo/sushibar/internal/notification"
)

// NotifierStub records synchronous sends.
type NotifierStub struct {
	Recipients []string
	Report     notification.DeliveryReport

	mu   sync.Mutex
	Sent []notification.Message
}

// Send records msg and returns configured report.
func (n *NotifierStub) Send(ctx context.Context, msg notification.Message) notification.DeliveryReport {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, msg)
	return n.Report
}

// StaffRecipients returns configured recipients.
func (n *NotifierStub) StaffRecipients() []string {
	return n.Recipients
}

// QueueStub records enqueued messages; Full makes it reject everything.
type QueueStub struct {
	Full bool

	mu       sync.Mutex
	Enqueued []notification.Message
}

// Enqueue records msg unless Full is set.
func (q *QueueStub) Enqueue(msg notification.Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Full {
		return false
	}
	q.Enqueued = append(q.Enqueued, msg)
	return true
}

// Messages returns copy of enqueued messages.
func (q *QueueStub) Messages() []notification.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]notification.Message(nil), q.Enqueued...)
}
