package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gloryco/thewell/internal/domain/guidance"
	"github.com/gloryco/thewell/internal/guidance/intent"
	"github.com/gloryco/thewell/internal/guidance/parse"
	"github.com/gloryco/thewell/internal/guidance/prompt"
	"github.com/gloryco/thewell/internal/llm"
	"github.com/gloryco/thewell/internal/platform/apierr"
	"github.com/gloryco/thewell/internal/pkg/pointers"
)

type LLMOptions struct {
	Engine llm.Engine
	Params llm.Params

	// MissingCredential names the unset environment variable when the engine
	// cannot be used. Every request then gets the degraded payload.
	MissingCredential string
}

// LLMService answers through a completion engine. It makes exactly one
// engine call per request.
type LLMService struct {
	base
	classifier        *intent.Classifier
	engine            llm.Engine
	params            llm.Params
	missingCredential string
}

func NewLLM(d Deps, opts LLMOptions) (*LLMService, error) {
	if opts.Engine == nil && opts.MissingCredential == "" {
		return nil, errors.New("llm service requires an engine")
	}
	return &LLMService{
		base:              newBase(d, ModeLLM),
		classifier:        intent.NewLight(),
		engine:            opts.Engine,
		params:            opts.Params,
		missingCredential: opts.MissingCredential,
	}, nil
}

func (s *LLMService) Guide(ctx context.Context, req Request) (*guidance.Payload, error) {
	started := time.Now()
	ctx, span := s.startSpan(ctx, "guidance.llm")
	defer span.End()

	in := s.classifier.Classify(req.Query)

	if s.missingCredential != "" {
		s.log.Warn("engine credential missing; returning degraded payload",
			"request_id", req.RequestID, "credential_env", s.missingCredential)
		p := parse.Augment(degradedPayload(s.missingCredential, in), in)
		s.finish(ctx, span, req, in, p, OutcomeDegraded, "", started)
		return p, nil
	}

	pr := prompt.Build(prompt.Input{
		Query:       req.Query,
		Mode:        req.Mode,
		Depth:       req.Depth,
		System:      req.System,
		Developer:   req.Developer,
		Constraints: req.Constraints,
	})

	raw, err := s.complete(ctx, pr)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		s.log.Error("completion failed", "request_id", req.RequestID, "engine", s.engine.Name(), "error", err)
		return nil, upstreamError(err)
	}

	res := parse.Parse(raw, in)
	outcome := OutcomeParsed
	if res.Outcome == parse.Fallback {
		outcome = OutcomeFallback
		s.log.Warn("model output not parseable; wrapping raw text",
			"request_id", req.RequestID, "error", res.Err, "raw_len", len(raw))
	}
	p := parse.Augment(res.Payload, in)

	s.finish(ctx, span, req, in, p, outcome, s.engine.Name(), started)
	return p, nil
}

func (s *LLMService) complete(ctx context.Context, pr prompt.Prompt) (string, error) {
	ctx, span := s.startSpan(ctx, "llm.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.engine", s.engine.Name()),
		attribute.String("llm.model", s.params.Model),
	)

	started := time.Now()
	raw, err := s.engine.Complete(ctx, llm.Request{
		System:    pr.System,
		Developer: pr.Developer,
		User:      pr.User,
		Params:    s.params,
	})
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.metrics.ObserveLLM(s.engine.Name(), status, time.Since(started))
	return raw, err
}

func upstreamError(err error) error {
	var he *llm.HTTPError
	if errors.As(err, &he) {
		return apierr.Upstream(apierr.CodeUpstream, he.Body, err)
	}
	return apierr.Upstream(apierr.CodeModelCallFailed, err.Error(), err)
}

func degradedPayload(envName string, in guidance.Intent) *guidance.Payload {
	return &guidance.Payload{
		Response: fmt.Sprintf("configuration error: missing %s on server.", envName),
		ScripturePathway: []guidance.ScriptureEntry{{
			Ref:         "Psalm 119:105",
			Why:         pointers.String("the word lights our path"),
			Translation: guidance.TranslationESV,
		}},
		NextSteps: []string{},
		Intent:    in.String(),
	}
}
