package service

import (
	"context"
	"time"

	"github.com/gloryco/thewell/internal/domain/guidance"
	"github.com/gloryco/thewell/internal/guidance/content"
	"github.com/gloryco/thewell/internal/guidance/intent"
	"github.com/gloryco/thewell/internal/guidance/parse"
)

// StaticService answers from the curated content tables without any model
// call.
type StaticService struct {
	base
	classifier *intent.Classifier
	builder    *content.Builder
}

func NewStatic(d Deps, table *content.Table) *StaticService {
	return &StaticService{
		base:       newBase(d, ModeStatic),
		classifier: intent.NewStatic(),
		builder:    content.NewBuilder(table),
	}
}

func (s *StaticService) Guide(ctx context.Context, req Request) (*guidance.Payload, error) {
	started := time.Now()
	ctx, span := s.startSpan(ctx, "guidance.static")
	defer span.End()

	in := s.classifier.Classify(req.Query)
	p := parse.Augment(s.builder.Build(in), in)

	s.finish(ctx, span, req, in, p, OutcomeStatic, "", started)
	return p, nil
}
