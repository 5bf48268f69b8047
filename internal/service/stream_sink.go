package service

import (
	"context"
	"time"

	"bedboard/internal/domain"
	"bedboard/pkg/redis"
)

// StreamSink publishes each snapshot to a Redis stream so other processes
// (or a future change-feed consumer) can follow bed state without holding an
// HTTP connection here. Registered as an ordinary subscriber.
type StreamSink struct {
	client  *redis.Client
	stream  string
	timeout time.Duration
}

func NewStreamSink(client *redis.Client, stream string) *StreamSink {
	return &StreamSink{
		client:  client,
		stream:  stream,
		timeout: 3 * time.Second,
	}
}

func (s *StreamSink) ID() string {
	return "redis-stream:" + s.stream
}

func (s *StreamSink) Send(snapshot []*domain.Bed) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := redis.PublishJSONToStream(ctx, s.client, s.stream, snapshot)
	return err
}
