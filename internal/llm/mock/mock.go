package mock

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gloryco/thewell/internal/llm"
)

// Engine answers every request with a fixed schema-shaped reply, or with Reply
// when set. Err, when set, is returned instead.
type Engine struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests []llm.Request
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string { return "mock" }

func (e *Engine) Complete(ctx context.Context, req llm.Request) (string, error) {
	e.mu.Lock()
	e.requests = append(e.requests, req)
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.Err != nil {
		return "", e.Err
	}
	if e.Reply != "" {
		return e.Reply, nil
	}

	obj := map[string]any{
		"response":           "mock: " + firstLine(req.User),
		"explanation":        nil,
		"scripture_pathway":  []map[string]any{{"ref": "Psalm 119:105", "quote": nil, "why": nil, "translation": "ESV"}},
		"next_steps":         []string{"Read Psalm 119:105"},
		"reflection_prayer":  nil,
		"follow_up_question": nil,
	}
	b, _ := json.Marshal(obj)
	return string(b), nil
}

// Requests returns the requests seen so far.
func (e *Engine) Requests() []llm.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]llm.Request(nil), e.requests...)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
