// Package gemini adapts the Google Gen AI SDK to the llm.Engine interface.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/gloryco/thewell/internal/llm"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey  string
	BaseURL string
	// HTTPClient overrides the SDK transport. Tests use it to avoid the network.
	HTTPClient *http.Client
}

type Engine struct {
	client *genai.Client
}

func New(ctx context.Context, cfg Config) (*Engine, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("gemini: api key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{client: client}, nil
}

func (e *Engine) Name() string { return "gemini" }

// Complete sends the system and developer preambles as one system instruction
// and the user prompt as the only content turn.
func (e *Engine) Complete(ctx context.Context, req llm.Request) (string, error) {
	if strings.TrimSpace(req.User) == "" {
		return "", errors.New("no messages")
	}
	model := strings.TrimSpace(req.Params.Model)
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = DefaultModel
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(req.Params.Temperature)),
		TopP:             genai.Ptr(float32(req.Params.TopP)),
		PresencePenalty:  genai.Ptr(float32(req.Params.PresencePenalty)),
		FrequencyPenalty: genai.Ptr(float32(req.Params.FrequencyPenalty)),
		ResponseMIMEType: "application/json",
	}
	if sys := joinNonEmpty(req.System, req.Developer); sys != "" {
		cfg.SystemInstruction = genai.NewContentFromText(sys, genai.RoleUser)
	}

	resp, err := e.client.Models.GenerateContent(ctx, model, []*genai.Content{
		genai.NewContentFromText(req.User, genai.RoleUser),
	}, cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &llm.HTTPError{StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
