package service

import (
	"errors"
	"sync/atomic"

	"bedboard/internal/domain"

	"github.com/google/uuid"
)

var errSubscriberClosed = errors.New("subscriber closed")
var errSubscriberFull = errors.New("subscriber buffer full")

// ChanSubscriber bridges the publisher to a consumer goroutine (the SSE
// handler). Send never blocks the broadcast loop: a consumer that stopped
// draining gets errSubscriberFull and is dropped by the publisher.
type ChanSubscriber struct {
	id     string
	ch     chan []*domain.Bed
	closed atomic.Bool
}

func NewChanSubscriber(buffer int) *ChanSubscriber {
	if buffer <= 0 {
		buffer = 4
	}
	return &ChanSubscriber{
		id: uuid.NewString(),
		ch: make(chan []*domain.Bed, buffer),
	}
}

func (c *ChanSubscriber) ID() string {
	return c.id
}

// C is the consumer side. It is never closed; consumers select on their own
// done signal.
func (c *ChanSubscriber) C() <-chan []*domain.Bed {
	return c.ch
}

// Close marks the subscriber dead so in-flight broadcasts fail fast.
func (c *ChanSubscriber) Close() {
	c.closed.Store(true)
}

func (c *ChanSubscriber) Send(snapshot []*domain.Bed) error {
	if c.closed.Load() {
		return errSubscriberClosed
	}
	select {
	case c.ch <- snapshot:
		return nil
	default:
		return errSubscriberFull
	}
}
