package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build metadata and supported providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			printBuildInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print the release tag only")
	return cmd
}

func printBuildInfo(out io.Writer, info version.Info) {
	providers := make([]string, 0, len(domain.SupportedProviders))
	for _, p := range domain.SupportedProviders {
		providers = append(providers, string(p))
	}

	fmt.Fprintf(out, "recspec %s\n", info.Version)
	fmt.Fprintf(out, "  commit:    %s\n", info.ShortCommit())
	fmt.Fprintf(out, "  built:     %s\n", info.BuildDate)
	fmt.Fprintf(out, "  toolchain: %s (%s)\n", info.GoVersion, info.Platform)
	fmt.Fprintf(out, "  providers: %s\n", strings.Join(providers, ", "))
}
