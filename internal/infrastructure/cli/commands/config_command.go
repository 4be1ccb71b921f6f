package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	configapp "github.com/doeshing/recspec/internal/application/config"
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/infrastructure/cli/helpers"
)

const (
	msgConfigurationValid       = "Configuration valid"
	msgNoDifferencesFromDefault = "No differences from default configuration."
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change recspec configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigGetCommand(container),
		newConfigSetCommand(container),
		newConfigPathCommand(container),
		newConfigValidateCommand(container),
		newConfigResetCommand(container),
		newConfigDiffCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (API keys masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newConfigGetCommand creates the 'config get' subcommand
func newConfigGetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value (e.g. llm.provider)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getConfigurationValue(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newConfigSetCommand creates the 'config set' subcommand
func newConfigSetCommand(container *app.Container) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := strings.Join(args[1:], " ")
			return setConfigurationValue(cmd.Context(), cmd.OutOrStdout(), container, key, value, scope)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Write to the local or global file (default: active override, else local)")
	return cmd
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration is read from and written to",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.GetConfigStore(container)
			if err != nil {
				return err
			}
			loc, err := store.Resolve()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if loc.Found {
				fmt.Fprintf(out, "Active: %s\n", loc.Path)
			} else {
				fmt.Fprintln(out, "Active: none (defaults)")
			}
			fmt.Fprintf(out, "Local:  %s\n", store.Path(domain.ScopeLocal))
			fmt.Fprintf(out, "Global: %s\n", store.Path(domain.ScopeGlobal))
			return nil
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the active configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.GetConfigStore(container)
			if err != nil {
				return err
			}
			if _, err := store.Load(cmd.Context()); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgConfigurationValid)
			return nil
		},
	}
}

// newConfigResetCommand creates the 'config reset' subcommand
func newConfigResetCommand(container *app.Container) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a configuration file to defaults (a .bak copy is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigurationToDefaults(cmd.Context(), cmd.OutOrStdout(), container, scope)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Reset the local or global file (default: active override, else local)")
	return cmd
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	store, err := helpers.GetConfigStore(container)
	if err != nil {
		return err
	}
	cfg, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return helpers.WriteYAML(out, cfg.Redacted())
}

// getConfigurationValue retrieves a specific configuration value by key path
func getConfigurationValue(ctx context.Context, out io.Writer, container *app.Container, keyPath string) error {
	store, err := helpers.GetConfigStore(container)
	if err != nil {
		return err
	}
	cfg, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	genericMap, err := configapp.ToMap(cfg.Redacted())
	if err != nil {
		return err
	}

	value, found := configapp.TraverseNestedMap(genericMap, strings.Split(keyPath, "."))
	if !found {
		return fmt.Errorf("key %s not found in configuration", keyPath)
	}
	return helpers.WriteYAML(out, value)
}

// setConfigurationValue updates a configuration value by key path
func setConfigurationValue(ctx context.Context, out io.Writer, container *app.Container, keyPath, value, scopeFlag string) error {
	store, err := helpers.GetConfigStore(container)
	if err != nil {
		return err
	}
	scope, err := helpers.ParseScope(scopeFlag)
	if err != nil {
		return err
	}

	patch, err := configapp.PatchFromKeyPath(keyPath, value)
	if err != nil {
		if helpers.IsCredentialKey(keyPath) {
			return domain.RedactError(err, value)
		}
		return err
	}

	if err := helpers.BackupIfExists(out, store, scope); err != nil {
		return err
	}
	if _, err := store.Update(ctx, patch, scope); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "Updated %s in %s\n", keyPath, store.Path(scope))
	return nil
}

// resetConfigurationToDefaults resets the configuration to default values
func resetConfigurationToDefaults(ctx context.Context, out io.Writer, container *app.Container, scopeFlag string) error {
	store, err := helpers.GetConfigStore(container)
	if err != nil {
		return err
	}
	scope, err := helpers.ParseScope(scopeFlag)
	if err != nil {
		return err
	}

	if err := helpers.BackupIfExists(out, store, scope); err != nil {
		return err
	}
	defaults := domain.DefaultConfig()
	if err := store.Save(ctx, defaults, scope); err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}

	fmt.Fprintf(out, "Configuration reset at %s\n", store.Path(scope))
	return helpers.WriteYAML(out, defaults)
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(ctx context.Context, out io.Writer, container *app.Container) error {
	store, err := helpers.GetConfigStore(container)
	if err != nil {
		return err
	}
	current, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current configuration: %w", err)
	}

	diff := cmp.Diff(domain.DefaultConfig(), current.Redacted())
	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}
