package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloryco/thewell/internal/platform/logger"
)

type fakeClient struct {
	goredis.UniversalClient

	channel string
	payload string
	err     error
	closed  bool
}

func (f *fakeClient) Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd {
	f.channel = channel
	if b, ok := message.([]byte); ok {
		f.payload = string(b)
	}
	cmd := goredis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(1)
	return cmd
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestPublish(t *testing.T) {
	fc := &fakeClient{}
	p := newEventPublisher(logger.NewNop(), fc, "")
	require.Equal(t, DefaultChannel, p.Channel())

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := p.Publish(context.Background(), GuidanceEvent{
		RequestID: "req-1",
		Mode:      "static",
		Intent:    "crisis",
		Outcome:   "static",
		Crisis:    true,
		LatencyMS: 12,
		At:        at,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultChannel, fc.channel)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(fc.payload), &got))
	assert.Equal(t, "crisis", got["intent"])
	assert.Equal(t, true, got["crisis"])
	assert.Equal(t, "2026-01-02T03:04:05Z", got["at"])
	assert.NotContains(t, got, "query")

	require.NoError(t, p.Close())
	assert.True(t, fc.closed)
}

func TestPublishStampsTimeAndPropagatesErrors(t *testing.T) {
	fc := &fakeClient{err: errors.New("down")}
	p := newEventPublisher(logger.NewNop(), fc, "custom")
	assert.Equal(t, "custom", p.Channel())

	err := p.Publish(context.Background(), GuidanceEvent{Mode: "llm"})
	require.EqualError(t, err, "down")

	var ev GuidanceEvent
	require.NoError(t, json.Unmarshal([]byte(fc.payload), &ev))
	assert.False(t, ev.At.IsZero())
}

func TestNilPublisher(t *testing.T) {
	var p *EventPublisher
	assert.Error(t, p.Publish(context.Background(), GuidanceEvent{}))
	assert.NoError(t, p.Close())
	assert.NoError(t, Noop{}.Publish(context.Background(), GuidanceEvent{}))
}

func TestNewEventPublisherRequiresAddr(t *testing.T) {
	_, err := NewEventPublisher(context.Background(), logger.NewNop(), Options{})
	require.Error(t, err)
	_, err = NewEventPublisher(context.Background(), nil, Options{Addr: "localhost:6379"})
	require.Error(t, err)
}
