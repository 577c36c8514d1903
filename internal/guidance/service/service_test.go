package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gloryco/thewell/internal/clients/redis"
	"github.com/gloryco/thewell/internal/domain/guidance"
	"github.com/gloryco/thewell/internal/guidance/content"
	"github.com/gloryco/thewell/internal/guidance/prompt"
	"github.com/gloryco/thewell/internal/llm"
	"github.com/gloryco/thewell/internal/llm/mock"
	"github.com/gloryco/thewell/internal/observability"
	"github.com/gloryco/thewell/internal/platform/apierr"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []redis.GuidanceEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, ev redis.GuidanceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingPublisher) last(t *testing.T) redis.GuidanceEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

func newStatic(t *testing.T, pub EventPublisher) *StaticService {
	t.Helper()
	table, err := content.Default()
	require.NoError(t, err)
	return NewStatic(Deps{Events: pub}, table)
}

func newLLM(t *testing.T, eng llm.Engine, pub EventPublisher) *LLMService {
	t.Helper()
	s, err := NewLLM(Deps{Events: pub}, LLMOptions{Engine: eng, Params: llm.DefaultParams()})
	require.NoError(t, err)
	return s
}

func TestStaticGuide(t *testing.T) {
	pub := &recordingPublisher{}
	s := newStatic(t, pub)
	assert.Equal(t, ModeStatic, s.Mode())

	p, err := s.Guide(context.Background(), Request{Query: "I'm afraid I'll lose my salvation", RequestID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "assurance", p.Intent)
	assert.False(t, p.IsCrisis())
	assert.True(t, p.HasDisclaimer())
	require.NotNil(t, p.Recommendation)

	ev := pub.last(t)
	assert.Equal(t, "r1", ev.RequestID)
	assert.Equal(t, OutcomeStatic, ev.Outcome)
	assert.Equal(t, "assurance", ev.Intent)
}

func TestStaticGuideCrisis(t *testing.T) {
	pub := &recordingPublisher{}
	p, err := newStatic(t, pub).Guide(context.Background(), Request{Query: "I want to die and I have anxiety"})
	require.NoError(t, err)
	require.True(t, p.IsCrisis())
	assert.True(t, *p.Escalation.ContactRequired)
	assert.Equal(t, "crisis", p.Intent)
	assert.True(t, pub.last(t).Crisis)
}

func TestLLMGuideParsesModelOutput(t *testing.T) {
	eng := &mock.Engine{Reply: `{"response":"Pray honestly.","scripture_pathway":[{"ref":"Matthew 6:9-13","quote":null,"why":null,"translation":"ESV"}],"next_steps":["Pray the Lord's prayer"],"reflection_prayer":null,"follow_up_question":null,"escalation":{"type":"crisis","message":"spoof","contact_required":true}}`}
	pub := &recordingPublisher{}
	s := newLLM(t, eng, pub)

	p, err := s.Guide(context.Background(), Request{
		Query:       "why believe in god",
		Mode:        "/ask",
		Constraints: prompt.Constraints{XrefLimit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pray honestly.", p.Response)
	assert.Equal(t, "existence", p.Intent)
	assert.False(t, p.IsCrisis(), "the model cannot escalate a non-crisis query")
	assert.Equal(t, guidance.DefaultDisclaimer, p.Disclaimer)

	reqs := eng.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, strings.HasPrefix(reqs[0].User, "Question: why believe in god\nMode: /ask\nDepth: deep"))
	assert.Contains(t, reqs[0].User, "Use ≤ 2 cross-references")
	assert.Equal(t, llm.DefaultParams(), reqs[0].Params)

	ev := pub.last(t)
	assert.Equal(t, OutcomeParsed, ev.Outcome)
	assert.Equal(t, "mock", ev.Engine)
}

func TestLLMGuideCrisisOverridesModel(t *testing.T) {
	eng := &mock.Engine{Reply: `{"response":"ok","escalation":{"type":"none"}}`}
	p, err := newLLM(t, eng, nil).Guide(context.Background(), Request{Query: "I want to kill myself"})
	require.NoError(t, err)
	require.True(t, p.IsCrisis())
	assert.Equal(t, guidance.CrisisMessage, *p.Escalation.Message)
	assert.True(t, *p.Escalation.ContactRequired)
}

func TestLLMGuideFallback(t *testing.T) {
	eng := &mock.Engine{Reply: "not json {"}
	pub := &recordingPublisher{}
	p, err := newLLM(t, eng, pub).Guide(context.Background(), Request{Query: "what is the trinity"})
	require.NoError(t, err)
	assert.Equal(t, "not json {", p.Response)
	assert.Empty(t, p.ScripturePathway)
	assert.Equal(t, "trinity", p.Intent)
	assert.True(t, p.HasDisclaimer())
	assert.Equal(t, OutcomeFallback, pub.last(t).Outcome)
}

func TestLLMGuideUpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		detail string
	}{
		{"http status", &llm.HTTPError{StatusCode: 429, Body: "slow down"}, apierr.CodeUpstream, "slow down"},
		{"transport", errors.New("dial tcp: refused"), apierr.CodeModelCallFailed, "dial tcp: refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			p, err := newLLM(t, &mock.Engine{Err: tc.err}, pub).Guide(context.Background(), Request{Query: "q"})
			require.Nil(t, p)
			var ae *apierr.Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, 502, ae.Status)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.detail, ae.Detail)
			assert.ErrorIs(t, err, tc.err)
			assert.Empty(t, pub.events, "failed requests publish nothing")
		})
	}
}

func TestLLMGuideDegradedWithoutCredential(t *testing.T) {
	eng := mock.New()
	s, err := NewLLM(Deps{}, LLMOptions{Engine: eng, MissingCredential: "OPENAI_API_KEY"})
	require.NoError(t, err)

	p, err := s.Guide(context.Background(), Request{Query: "I am in danger"})
	require.NoError(t, err)
	assert.Equal(t, "configuration error: missing OPENAI_API_KEY on server.", p.Response)
	require.Len(t, p.ScripturePathway, 1)
	assert.Equal(t, "Psalm 119:105", p.ScripturePathway[0].Ref)
	assert.Equal(t, "the word lights our path", *p.ScripturePathway[0].Why)
	assert.Nil(t, p.ScripturePathway[0].Quote)
	assert.True(t, p.IsCrisis())
	assert.True(t, p.HasDisclaimer())
	assert.Empty(t, eng.Requests(), "no upstream call without a credential")
}

func TestNewLLMRequiresEngine(t *testing.T) {
	_, err := NewLLM(Deps{}, LLMOptions{})
	require.Error(t, err)
}

func TestPublishFailureIsNotFatal(t *testing.T) {
	m := observability.NewMetrics()
	table, err := content.Default()
	require.NoError(t, err)
	s := NewStatic(Deps{Events: &recordingPublisher{err: errors.New("redis down")}, Metrics: m}, table)

	p, err := s.Guide(context.Background(), Request{Query: "help me pray"})
	require.NoError(t, err)
	assert.Equal(t, "prayer", p.Intent)
}

func TestGuideRecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	_, err := newLLM(t, mock.New(), nil).Guide(context.Background(), Request{Query: "is jesus god"})
	require.NoError(t, err)

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"llm.complete", "guidance.llm"}, names)
}
