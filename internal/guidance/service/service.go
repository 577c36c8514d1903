// Package service answers guidance requests in static or model-backed mode.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gloryco/thewell/internal/clients/redis"
	"github.com/gloryco/thewell/internal/domain/guidance"
	"github.com/gloryco/thewell/internal/observability"
	"github.com/gloryco/thewell/internal/platform/logger"
)

const (
	ModeStatic = "static"
	ModeLLM    = "llm"
)

// Outcomes reported in logs, metrics and analytics events.
const (
	OutcomeStatic   = "static"
	OutcomeParsed   = "parsed"
	OutcomeFallback = "fallback"
	OutcomeDegraded = "degraded"
)

// Guider answers one request. Errors are *apierr.Error values.
type Guider interface {
	Mode() string
	Guide(ctx context.Context, req Request) (*guidance.Payload, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev redis.GuidanceEvent) error
}

// Deps are the collaborators shared by both services. Events and Metrics may
// be nil.
type Deps struct {
	Log     *logger.Logger
	Events  EventPublisher
	Metrics *observability.Metrics
}

type base struct {
	log     *logger.Logger
	events  EventPublisher
	metrics *observability.Metrics
	mode    string
}

func newBase(d Deps, mode string) base {
	log := d.Log
	if log == nil {
		log = logger.NewNop()
	}
	events := d.Events
	if events == nil {
		events = redis.Noop{}
	}
	return base{
		log:     log.With("service", "Guidance", "mode", mode),
		events:  events,
		metrics: d.Metrics,
		mode:    mode,
	}
}

func (b base) Mode() string { return b.mode }

func (b base) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, name, trace.WithAttributes(attribute.String("guidance.mode", b.mode)))
}

// finish records the answered request. Publishing is best effort: a failure
// is logged and counted, never returned.
func (b base) finish(ctx context.Context, span trace.Span, req Request, in guidance.Intent, p *guidance.Payload, outcome, engine string, started time.Time) {
	span.SetAttributes(
		attribute.String("guidance.intent", in.String()),
		attribute.String("guidance.outcome", outcome),
		attribute.Bool("guidance.crisis", p.IsCrisis()),
	)
	span.SetStatus(codes.Ok, "")

	b.metrics.IncGuidance(b.mode, in.String(), outcome)

	ev := redis.GuidanceEvent{
		RequestID: req.RequestID,
		Mode:      b.mode,
		Intent:    in.String(),
		Outcome:   outcome,
		Crisis:    p.IsCrisis(),
		Engine:    engine,
		LatencyMS: time.Since(started).Milliseconds(),
	}
	if err := b.events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		b.metrics.IncAnalyticsError()
		b.log.Warn("analytics publish failed", "request_id", req.RequestID, "error", err)
	}

	b.log.Info("guidance answered",
		"request_id", req.RequestID,
		"intent", in.String(),
		"outcome", outcome,
		"crisis", p.IsCrisis(),
		"query", req.Query,
		"duration_ms", time.Since(started).Milliseconds(),
	)
}
