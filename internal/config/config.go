package config

import "time"

type Duration struct {
	Duration time.Duration
}

const (
	ModeStatic = "static"
	ModeLLM    = "llm"

	EngineOAIHTTP = "oai_http"
	EngineGemini  = "gemini"
	EngineMock    = "mock"
)

type HTTPConfig struct {
	Addr              string   `json:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes"`
	EnableMetrics     bool     `json:"enable_metrics,omitempty"`
}

type GuidanceConfig struct {
	// Mode selects the static rule engine or the model-backed engine.
	Mode      string `json:"mode"`
	RoutePath string `json:"route_path"`

	// AllowedOrigins is a CORS allow-list. Empty or "*" reflects any origin.
	AllowedOrigins []string `json:"allowed_origins,omitempty"`

	// ContentPath optionally replaces the embedded static content tables.
	ContentPath string `json:"content_path,omitempty"`
}

type EngineConfig struct {
	Type string `json:"type"`

	BaseURL             string `json:"base_url,omitempty"`
	ChatCompletionsPath string `json:"chat_completions_path,omitempty"`

	// APIKey is never read from the JSON file; it comes from OPENAI_API_KEY or
	// GEMINI_API_KEY depending on Type.
	APIKey string `json:"-"`

	Timeout Duration `json:"timeout,omitempty"`

	Model            string  `json:"model,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"top_p,omitempty"`
	PresencePenalty  float64 `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"`
}

type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Password string `json:"-"`
	DB       int    `json:"db,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

type Config struct {
	Env      string         `json:"env"`
	Version  string         `json:"version,omitempty"`
	HTTP     HTTPConfig     `json:"http"`
	Guidance GuidanceConfig `json:"guidance"`
	Engine   EngineConfig   `json:"engine"`
	Redis    RedisConfig    `json:"redis"`
}

// APIKeyEnv names the environment variable that carries the credential for
// the configured engine. The mock engine needs none.
func (c *Config) APIKeyEnv() string {
	switch c.Engine.Type {
	case EngineGemini:
		return "GEMINI_API_KEY"
	case EngineMock:
		return ""
	default:
		return "OPENAI_API_KEY"
	}
}
