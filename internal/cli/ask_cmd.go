package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gloryco/thewell/internal/guidance/service"
	"github.com/gloryco/thewell/internal/platform/logger"
)

func newAskCmd(deps Deps) *cobra.Command {
	var mode string
	var clientMode string
	var depth string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question with the configured service and print the JSON payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(deps, mode)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			a, err := deps.NewApp(cmd.Context(), cfg, logger.NewNop())
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()

			p, err := a.Guider.Guide(cmd.Context(), service.Request{
				Query: strings.Join(args, " "),
				Mode:  clientMode,
				Depth: depth,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(p)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Override guidance mode (static|llm)")
	cmd.Flags().StringVar(&clientMode, "as", "", "Client mode sent to the model, e.g. /ask or /study")
	cmd.Flags().StringVar(&depth, "depth", "", "Requested depth (default deep)")
	return cmd
}
