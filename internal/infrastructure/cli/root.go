package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	"github.com/doeshing/recspec/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built once flags are parsed so
// that --config and --log-file reach it.
func NewRootCmd(opts Options) *cobra.Command {
	var (
		verbose    = opts.Verbose
		configPath string
		logFile    string
	)
	container := &app.Container{}

	root := &cobra.Command{
		Use:   "recspec",
		Short: "recspec - recordings to specifications to Playwright tests",
		Long: `recspec turns a browser recording (Chrome DevTools Recorder JSON export) into a
Gherkin specification, and a specification into Playwright page object, test and data files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := app.BuildContainer(cmd.Context(), app.Options{
				Verbose:    verbose,
				ConfigPath: configPath,
				LogFile:    logFile,
			})
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if container.Logger != nil {
				_ = container.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", verbose, "Enable debug logging on stderr")
	flags.StringVar(&configPath, "config", "", "Use this config file instead of .recspec/config.json")
	flags.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")

	root.AddCommand(
		commands.NewSpecCommand(container),
		commands.NewCodeCommand(container),
		commands.NewSuggestCommand(container),
		commands.NewConfigCommand(container),
		commands.NewSetupCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}
