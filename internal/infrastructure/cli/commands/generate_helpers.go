package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/infrastructure/cli/helpers"
)

// generationFlags are shared by every command that calls the generation gateway.
type generationFlags struct {
	timeout   time.Duration
	noSpinner bool
}

func (f *generationFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.timeout, "timeout", domain.DefaultRequestTimeout, "Abort the generation request after this long")
	cmd.Flags().BoolVar(&f.noSpinner, "no-spinner", false, "Do not animate progress on stderr")
}

// run executes fn under the configured timeout with a progress spinner.
func (f *generationFlags) run(cmd *cobra.Command, label string, fn func(ctx context.Context) error) error {
	ctx := cmd.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	out := cmd.ErrOrStderr()
	if f.noSpinner {
		out = nil
	}
	return helpers.WithSpinner(out, label, func() error {
		return fn(ctx)
	})
}

func requirePipeline(container *app.Container) error {
	if container == nil || container.Pipeline == nil {
		return fmt.Errorf("pipeline service unavailable")
	}
	return nil
}

func optionalBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
