package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gloryco/thewell/internal/platform/envutil"
)

const (
	DefaultRoutePath = "/api/the-well"
	DefaultModel     = "gpt-4o-mini"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		if strings.TrimSpace(u) == "" {
			d.Duration = 0
			return nil
		}
		dd, err := time.ParseDuration(u)
		if err != nil {
			return err
		}
		d.Duration = dd
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		Guidance: GuidanceConfig{
			Mode:      ModeStatic,
			RoutePath: DefaultRoutePath,
		},
		Engine: EngineConfig{
			Type:             EngineOAIHTTP,
			Timeout:          Duration{Duration: 60 * time.Second},
			Model:            DefaultModel,
			Temperature:      0.7,
			TopP:             0.9,
			PresencePenalty:  0.1,
			FrequencyPenalty: 0.1,
		},
	}
}

// Load builds the config from defaults, an optional JSON file
// (WELL_CONFIG_PATH or ./config/config.json) and environment overrides.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := envutil.String("WELL_CONFIG_PATH")
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.json")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		// Decoding over the defaults keeps any field the file leaves out.
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := envutil.String("LOG_MODE"); v != "" {
		cfg.Env = v
	}
	if v := envutil.String("WELL_VERSION"); v != "" {
		cfg.Version = v
	}
	if v := envutil.String("WELL_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := envutil.String("WELL_ENABLE_METRICS"); v != "" {
		cfg.HTTP.EnableMetrics = envutil.ParseBool(v)
	}
	cfg.HTTP.MaxRequestBytes = int64(envutil.Int("WELL_MAX_REQUEST_BYTES", int(cfg.HTTP.MaxRequestBytes)))
	if v := envutil.String("WELL_MODE"); v != "" {
		cfg.Guidance.Mode = v
	}
	if v := envutil.String("WELL_ROUTE_PATH"); v != "" {
		cfg.Guidance.RoutePath = v
	}
	if origins := envutil.List("WELL_ALLOWED_ORIGINS"); len(origins) > 0 {
		cfg.Guidance.AllowedOrigins = origins
	}
	if v := envutil.String("WELL_CONTENT_PATH"); v != "" {
		cfg.Guidance.ContentPath = v
	}
	if v := envutil.String("WELL_ENGINE"); v != "" {
		cfg.Engine.Type = v
	}
	if v := envutil.String("WELL_MODEL"); v != "" {
		cfg.Engine.Model = v
	}
	if v := envutil.String("WELL_LLM_BASE_URL"); v != "" {
		cfg.Engine.BaseURL = v
	}
	if v := envutil.String("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := envutil.String("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := envutil.String("REDIS_CHANNEL"); v != "" {
		cfg.Redis.Channel = v
	}
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}

	cfg.Guidance.Mode = strings.ToLower(strings.TrimSpace(cfg.Guidance.Mode))
	switch cfg.Guidance.Mode {
	case "":
		cfg.Guidance.Mode = ModeStatic
	case ModeStatic, ModeLLM:
	default:
		return fmt.Errorf("invalid guidance.mode=%q (want %q or %q)", cfg.Guidance.Mode, ModeStatic, ModeLLM)
	}

	route := strings.TrimSpace(cfg.Guidance.RoutePath)
	if route == "" {
		route = DefaultRoutePath
	}
	if !strings.HasPrefix(route, "/") {
		return fmt.Errorf("guidance.route_path must start with '/', got %q", route)
	}
	cfg.Guidance.RoutePath = route

	origins := cfg.Guidance.AllowedOrigins[:0]
	for _, o := range cfg.Guidance.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.Guidance.AllowedOrigins = origins

	cfg.Engine.Type = strings.ToLower(strings.TrimSpace(cfg.Engine.Type))
	switch cfg.Engine.Type {
	case "", "openai", "openai_http", EngineOAIHTTP:
		cfg.Engine.Type = EngineOAIHTTP
	case EngineGemini, EngineMock:
	default:
		return fmt.Errorf("invalid engine.type=%q", cfg.Engine.Type)
	}
	cfg.Engine.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Engine.BaseURL), "/")
	if strings.TrimSpace(cfg.Engine.Model) == "" {
		cfg.Engine.Model = DefaultModel
	}
	if cfg.Engine.Timeout.Duration <= 0 {
		cfg.Engine.Timeout = Duration{Duration: 60 * time.Second}
	}
	if cfg.Engine.Temperature < 0 || cfg.Engine.TopP < 0 || cfg.Engine.TopP > 1 {
		return errors.New("engine sampling parameters out of range")
	}

	if key := cfg.APIKeyEnv(); key != "" {
		cfg.Engine.APIKey = envutil.String(key)
	}
	return nil
}
