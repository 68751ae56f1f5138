// Package publish sends solve results and self-test summaries to a Redis
// pub/sub channel as JSON events.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quadsolve/internal/codec"
	"quadsolve/internal/config"
	"quadsolve/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Event types
const (
	EventSolve   = "solve"
	EventTestRun = "test_run"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 3 * time.Second
)

// Event is the JSON message published for every result
type Event struct {
	Type        string                 `json:"type"`
	Solve       *codec.SolveDocument   `json:"solve,omitempty"`
	TestRun     *codec.TestRunDocument `json:"test_run,omitempty"`
	PublishedAt time.Time              `json:"published_at"`
}

// client is the subset of *redis.Client the publisher needs
type client interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Close() error
}

// Publisher publishes events to one channel. A nil *Publisher is valid and
// publishes nothing.
type Publisher struct {
	client  client
	channel string
	now     func() time.Time
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg config.PublishConfig) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	return newPublisher(rdb, cfg.Channel), nil
}

func newPublisher(c client, channel string) *Publisher {
	if channel == "" {
		channel = config.DefaultPublishChannel
	}
	return &Publisher{
		client:  c,
		channel: channel,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Channel returns the channel events are published to
func (p *Publisher) Channel() string {
	if p == nil {
		return ""
	}
	return p.channel
}

// PublishSolve publishes a solve record
func (p *Publisher) PublishSolve(ctx context.Context, rec *domain.SolveRecord) error {
	if p == nil {
		return nil
	}
	doc := codec.NewSolveDocument(rec)
	return p.publish(ctx, Event{Type: EventSolve, Solve: &doc})
}

// PublishTestRun publishes the summary of a test run. Per-case outcomes are
// left out.
func (p *Publisher) PublishTestRun(ctx context.Context, run *domain.TestRun) error {
	if p == nil {
		return nil
	}
	doc := codec.NewTestRunDocument(run)
	doc.Outcomes = nil
	return p.publish(ctx, Event{Type: EventTestRun, TestRun: &doc})
}

func (p *Publisher) publish(ctx context.Context, event Event) error {
	event.PublishedAt = p.now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s event to %s: %w", event.Type, p.channel, err)
	}
	return nil
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}
