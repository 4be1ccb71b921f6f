package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	"github.com/doeshing/recspec/internal/application/pipeline"
)

// NewCodeCommand creates the code command
func NewCodeCommand(container *app.Container) *cobra.Command {
	var (
		outputDir  string
		typescript bool
		gen        generationFlags
	)

	cmd := &cobra.Command{
		Use:   "code <spec.feature>",
		Short: "Generate Playwright page object, test and data files from a specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePipeline(container); err != nil {
				return err
			}
			req := pipeline.CodeRequest{
				SpecPath:   args[0],
				OutputDir:  outputDir,
				TypeScript: optionalBool(cmd, "typescript", typescript),
			}

			var result pipeline.CodeResult
			err := gen.run(cmd, "Generating test code", func(ctx context.Context) error {
				var err error
				result, err = container.Pipeline.GenerateCode(ctx, req)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Generated files:")
			for _, path := range result.Paths {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory receiving the generated files")
	cmd.Flags().BoolVar(&typescript, "typescript", true, "Generate TypeScript instead of JavaScript (default from config)")
	gen.register(cmd)
	return cmd
}
