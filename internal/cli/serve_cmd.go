package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(deps Deps) *cobra.Command {
	var mode string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP guidance service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(deps, mode)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			log, err := deps.NewLogger(cfg.Env)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := deps.NewApp(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()

			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Override guidance mode (static|llm)")
	cmd.Flags().StringVar(&addr, "addr", "", "Override listen address")
	return cmd
}

