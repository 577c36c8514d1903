package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gloryco/thewell/internal/app"
	"github.com/gloryco/thewell/internal/config"
	"github.com/gloryco/thewell/internal/platform/logger"
)

// Deps lets tests replace config loading and the logger.
type Deps struct {
	LoadConfig func() (*config.Config, error)
	NewLogger  func(env string) (*logger.Logger, error)
	NewApp     func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app.App, error)
}

func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewLogger:  logger.New,
		NewApp:     app.New,
	}
}

// NewRootCmd creates the top-level "thewell" command.
func NewRootCmd(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "thewell",
		Short:         "Scripture-anchored guidance service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(deps),
		newAskCmd(deps),
		newClassifyCmd(),
	)

	return root
}

func loadConfig(deps Deps, mode string) (*config.Config, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, err
	}
	switch mode = strings.ToLower(strings.TrimSpace(mode)); mode {
	case "":
	case config.ModeStatic, config.ModeLLM:
		cfg.Guidance.Mode = mode
	default:
		return nil, fmt.Errorf("invalid --mode %q (want %q or %q)", mode, config.ModeStatic, config.ModeLLM)
	}
	return cfg, nil
}

func writeLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}
