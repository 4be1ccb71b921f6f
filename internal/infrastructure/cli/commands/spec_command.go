package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	"github.com/doeshing/recspec/internal/application/pipeline"
	"github.com/doeshing/recspec/internal/domain"
)

// NewSpecCommand creates the spec command
func NewSpecCommand(container *app.Container) *cobra.Command {
	var (
		output    string
		language  string
		edgeCases bool
		gen       generationFlags
	)

	cmd := &cobra.Command{
		Use:   "spec <recording.json>",
		Short: "Generate a Gherkin specification from a browser recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePipeline(container); err != nil {
				return err
			}
			req := pipeline.SpecRequest{
				RecordingPath:    args[0],
				OutputPath:       output,
				Language:         domain.Language(language),
				IncludeEdgeCases: optionalBool(cmd, "edge-cases", edgeCases),
			}

			var result pipeline.SpecResult
			err := gen.run(cmd, "Generating specification", func(ctx context.Context) error {
				var err error
				result, err = container.Pipeline.GenerateSpec(ctx, req)
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
			fmt.Fprintf(out, "Specification for %q (%d steps) written to %s\n",
				result.Recording.Title, result.Recording.Metadata.StepCount, result.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the specification to this file instead of stdout")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Specification language (en|ja, default from config)")
	cmd.Flags().BoolVar(&edgeCases, "edge-cases", true, "Ask for additional edge-case scenarios (default from config)")
	gen.register(cmd)
	return cmd
}
