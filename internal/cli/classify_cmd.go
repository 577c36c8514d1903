package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gloryco/thewell/internal/guidance/intent"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <question>",
		Short: "Print the static and light intents for a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			if err := writeLine(out, fmt.Sprintf("static: %s", intent.NewStatic().Classify(q))); err != nil {
				return err
			}
			return writeLine(out, fmt.Sprintf("light:  %s", intent.NewLight().Classify(q)))
		},
	}
}
