package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gloryco/thewell/internal/platform/logger"
)

const DefaultChannel = "thewell.guidance"

// GuidanceEvent is published once per answered request. It never carries the
// query text.
type GuidanceEvent struct {
	RequestID string    `json:"request_id,omitempty"`
	Mode      string    `json:"mode"`
	Intent    string    `json:"intent"`
	Outcome   string    `json:"outcome"`
	Crisis    bool      `json:"crisis"`
	Engine    string    `json:"engine,omitempty"`
	LatencyMS int64     `json:"latency_ms"`
	At        time.Time `json:"at"`
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type EventPublisher struct {
	log     *logger.Logger
	rdb     goredis.UniversalClient
	channel string
}

// NewEventPublisher connects to Redis and verifies the connection with a ping.
func NewEventPublisher(ctx context.Context, log *logger.Logger, opts Options) (*EventPublisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newEventPublisher(log, rdb, opts.Channel), nil
}

func newEventPublisher(log *logger.Logger, rdb goredis.UniversalClient, channel string) *EventPublisher {
	ch := strings.TrimSpace(channel)
	if ch == "" {
		ch = DefaultChannel
	}
	return &EventPublisher{
		log:     log.With("service", "RedisEventPublisher"),
		rdb:     rdb,
		channel: ch,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, ev GuidanceEvent) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("redis event publisher not initialized")
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, raw).Err()
}

func (p *EventPublisher) Channel() string { return p.channel }

func (p *EventPublisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}

// Noop discards events. Used when REDIS_ADDR is unset.
type Noop struct{}

func (Noop) Publish(context.Context, GuidanceEvent) error { return nil }
func (Noop) Close() error                                 { return nil }
