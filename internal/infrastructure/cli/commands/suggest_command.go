package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	"github.com/doeshing/recspec/internal/application/pipeline"
	"github.com/doeshing/recspec/internal/domain"
)

// NewSuggestCommand creates the suggest command
func NewSuggestCommand(container *app.Container) *cobra.Command {
	var (
		output   string
		language string
		focus    string
		gen      generationFlags
	)

	areas := make([]string, 0, len(domain.FocusAreas))
	for _, area := range domain.FocusAreas {
		areas = append(areas, string(area))
	}

	cmd := &cobra.Command{
		Use:   "suggest <spec.feature>",
		Short: "Ask for an improved version of a specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePipeline(container); err != nil {
				return err
			}
			req := pipeline.SuggestRequest{
				SpecPath:   args[0],
				OutputPath: output,
				Language:   domain.Language(language),
				FocusArea:  domain.FocusArea(focus),
			}

			var result pipeline.SuggestResult
			err := gen.run(cmd, "Reviewing specification", func(ctx context.Context) error {
				var err error
				result, err = container.Pipeline.Suggest(ctx, req)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.OutputPath == "" {
				fmt.Fprintln(out, result.Spec)
				return nil
			}
			fmt.Fprintf(out, "Improved specification written to %s\n", result.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the improved specification to this file instead of stdout")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Specification language (en|ja, default from config)")
	cmd.Flags().StringVarP(&focus, "focus", "f", string(domain.FocusAll), "Focus area ("+strings.Join(areas, "|")+")")
	gen.register(cmd)
	return cmd
}
