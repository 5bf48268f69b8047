package service

import (
	"context"
	"sync"
	"time"

	"bedboard/internal/domain"

	"go.uber.org/zap"
)

// Snapshotter provides the full bed snapshot the publisher broadcasts.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]*domain.Bed, error)
}

// Subscriber is one recipient of periodic snapshots. Send returning an error
// marks the subscriber dead: it is removed from the registry and never pushed
// to again, without affecting delivery to the others.
type Subscriber interface {
	ID() string
	Send(snapshot []*domain.Bed) error
}

// Publisher broadcasts a fresh snapshot to every registered subscriber on a
// fixed interval. The ticker goroutine is started lazily on the first
// Subscribe and stopped when the registry empties, so an idle process does
// no background polling. Delivery is best effort: no replay, no gap filling.
type Publisher struct {
	source   Snapshotter
	interval time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	subs map[string]Subscriber
	stop chan struct{}
}

func NewPublisher(source Snapshotter, interval time.Duration, logger *zap.Logger) *Publisher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Publisher{
		source:   source,
		interval: interval,
		logger:   logger,
		subs:     map[string]Subscriber{},
	}
}

// Subscribe registers a subscriber and starts the poll loop if it was idle.
func (p *Publisher) Subscribe(sub Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subs[sub.ID()] = sub
	if p.stop == nil {
		p.stop = make(chan struct{})
		go p.loop(p.stop)
		p.logger.Debug("publisher loop started")
	}
}

// Unsubscribe removes a subscriber; the loop is cancelled once nobody is
// listening.
func (p *Publisher) Unsubscribe(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(id)
}

func (p *Publisher) removeLocked(id string) {
	delete(p.subs, id)
	if len(p.subs) == 0 && p.stop != nil {
		close(p.stop)
		p.stop = nil
		p.logger.Debug("publisher loop stopped, no subscribers")
	}
}

// SubscriberCount reports the registry size.
func (p *Publisher) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// Stop drops all subscribers and cancels the loop. Used at shutdown.
func (p *Publisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = map[string]Subscriber{}
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

func (p *Publisher) loop(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Broadcast()
		}
	}
}

// Broadcast reads one snapshot and pushes the same copy to every active
// subscriber. A snapshot read failure skips the round; a per-subscriber push
// failure removes only that subscriber.
func (p *Publisher) Broadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	snapshot, err := p.source.Snapshot(ctx)
	if err != nil {
		p.logger.Warn("snapshot read failed, skipping broadcast", zap.Error(err))
		return
	}

	p.mu.Lock()
	targets := make([]Subscriber, 0, len(p.subs))
	for _, sub := range p.subs {
		targets = append(targets, sub)
	}
	p.mu.Unlock()

	for _, sub := range targets {
		if err := sub.Send(snapshot); err != nil {
			p.logger.Warn("subscriber push failed, removing",
				zap.String("subscriber_id", sub.ID()),
				zap.Error(err))
			p.mu.Lock()
			p.removeLocked(sub.ID())
			p.mu.Unlock()
		}
	}
}
