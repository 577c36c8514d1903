package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gloryco/thewell/internal/clients/redis"
	"github.com/gloryco/thewell/internal/config"
	"github.com/gloryco/thewell/internal/guidance/service"
	"github.com/gloryco/thewell/internal/llm"
	"github.com/gloryco/thewell/internal/llm/gemini"
	"github.com/gloryco/thewell/internal/llm/mock"
	"github.com/gloryco/thewell/internal/llm/oaihttp"
	"github.com/gloryco/thewell/internal/platform/logger"
)

type Clients struct {
	Events service.EventPublisher
	Engine llm.Engine

	// MissingCredential is set instead of Engine when the engine's key is
	// absent.
	MissingCredential string

	redis *redis.EventPublisher
}

func (c Clients) AnalyticsEnabled() bool { return c.redis != nil }

func (c Clients) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *config.Config) (Clients, error) {
	var out Clients

	out.Events = redis.Noop{}
	if cfg.Redis.Addr != "" {
		pub, err := redis.NewEventPublisher(ctx, log, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			log.Warn("redis unavailable; analytics disabled", "error", err)
		} else {
			out.Events = pub
			out.redis = pub
		}
	}

	if cfg.Guidance.Mode != config.ModeLLM {
		return out, nil
	}

	eng, missing, err := wireEngine(ctx, cfg)
	if err != nil {
		_ = out.Close()
		return Clients{}, err
	}
	out.Engine = eng
	out.MissingCredential = missing
	return out, nil
}

func wireEngine(ctx context.Context, cfg *config.Config) (llm.Engine, string, error) {
	ec := cfg.Engine
	if ec.Type != config.EngineMock && ec.APIKey == "" {
		return nil, cfg.APIKeyEnv(), nil
	}

	switch ec.Type {
	case config.EngineMock:
		return mock.New(), "", nil
	case config.EngineGemini:
		eng, err := gemini.New(ctx, gemini.Config{
			APIKey:     ec.APIKey,
			BaseURL:    ec.BaseURL,
			HTTPClient: &http.Client{Timeout: ec.Timeout.Duration},
		})
		if err != nil {
			return nil, "", err
		}
		return eng, "", nil
	case config.EngineOAIHTTP:
		eng, err := oaihttp.New(oaihttp.Config{
			BaseURL:             ec.BaseURL,
			ChatCompletionsPath: ec.ChatCompletionsPath,
			APIKey:              ec.APIKey,
			Timeout:             ec.Timeout.Duration,
		})
		if err != nil {
			return nil, "", err
		}
		return eng, "", nil
	default:
		return nil, "", fmt.Errorf("unsupported engine type %q", ec.Type)
	}
}
