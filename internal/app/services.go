package app

import (
	"fmt"

	"github.com/gloryco/thewell/internal/config"
	"github.com/gloryco/thewell/internal/guidance/content"
	"github.com/gloryco/thewell/internal/guidance/service"
	"github.com/gloryco/thewell/internal/llm"
	"github.com/gloryco/thewell/internal/observability"
	"github.com/gloryco/thewell/internal/platform/logger"
)

func wireGuider(log *logger.Logger, cfg *config.Config, clients Clients, metrics *observability.Metrics) (service.Guider, error) {
	deps := service.Deps{
		Log:     log,
		Events:  clients.Events,
		Metrics: metrics,
	}

	if cfg.Guidance.Mode == config.ModeLLM {
		if clients.MissingCredential != "" {
			log.Warn("engine credential missing; serving degraded payloads", "credential_env", clients.MissingCredential)
		}
		return service.NewLLM(deps, service.LLMOptions{
			Engine:            clients.Engine,
			MissingCredential: clients.MissingCredential,
			Params: llm.Params{
				Model:            cfg.Engine.Model,
				Temperature:      cfg.Engine.Temperature,
				TopP:             cfg.Engine.TopP,
				PresencePenalty:  cfg.Engine.PresencePenalty,
				FrequencyPenalty: cfg.Engine.FrequencyPenalty,
			},
		})
	}

	table, err := content.LoadFile(cfg.Guidance.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return service.NewStatic(deps, table), nil
}
