package llm

import (
	"context"
	"fmt"
)

// Params are the sampling settings sent with every completion. They come from
// startup configuration, never from the caller.
type Params struct {
	Model            string
	Temperature      float64
	TopP             float64
	PresencePenalty  float64
	FrequencyPenalty float64
}

func DefaultParams() Params {
	return Params{
		Model:            "gpt-4o-mini",
		Temperature:      0.7,
		TopP:             0.9,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	}
}

type Request struct {
	System    string
	Developer string
	User      string
	Params    Params
}

// Engine performs exactly one completion call and returns the raw text of the
// first choice. Implementations never retry.
type Engine interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// HTTPError is returned when the upstream answered with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }
