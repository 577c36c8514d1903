package observability

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/the-well", "200", 30*time.Millisecond)
	m.IncGuidance("static", "crisis", "static")
	m.IncGuidance("static", "crisis", "static")
	m.ObserveLLM("mock", "ok", 2*time.Second)
	m.APIInflightInc()
	m.APIInflightInc()
	m.APIInflightDec()
	m.IncAnalyticsError()

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, "# TYPE thewell_api_requests_total counter")
	assert.Contains(t, out, `thewell_api_requests_total{method="POST",route="/api/the-well",status="200"} 1`)
	assert.Contains(t, out, `thewell_guidance_requests_total{mode="static",intent="crisis",outcome="static"} 2`)
	assert.Contains(t, out, `thewell_llm_request_duration_seconds_bucket{engine="mock",le="1"} 0`)
	assert.Contains(t, out, `thewell_llm_request_duration_seconds_bucket{engine="mock",le="2"} 1`)
	assert.Contains(t, out, `thewell_llm_request_duration_seconds_bucket{engine="mock",le="+Inf"} 1`)
	assert.Contains(t, out, "thewell_api_inflight_requests 1\n")
	assert.Contains(t, out, "thewell_analytics_publish_errors_total 1\n")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.IncGuidance("llm", "general", "parsed")
	m.ObserveLLM("mock", "ok", time.Millisecond)
	m.APIInflightInc()
	m.APIInflightDec()
	m.IncAnalyticsError()

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	assert.Empty(t, buf.String())
}

func TestLabelEscaping(t *testing.T) {
	c := NewCounterVec("x_total", "x", []string{"a", "b"})
	c.Inc(`q"u\o`+"\n", "")
	assert.Equal(t, float64(1), c.Value(`q"u\o`+"\n", ""))

	var buf bytes.Buffer
	require.NoError(t, c.WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `x_total{a="q\"u\\o\n",b="unknown"} 1`)
}

func TestWriteHTTP(t *testing.T) {
	m := NewMetrics()
	m.IncGuidance("llm", "evil", "fallback")
	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), `outcome="fallback"`)
}
