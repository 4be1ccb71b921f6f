package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/recspec/internal/app"
	configapp "github.com/doeshing/recspec/internal/application/config"
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/recspec/internal/infrastructure/config"
)

// NewSetupCommand creates the interactive setup command.
func NewSetupCommand(container *app.Container) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively choose a provider and store its API key",
		Long: `Interactively choose a generation provider, store its API key and pick defaults.

Keys are written to the global file (~/.recspec/config.json) unless --scope local is given.
The file is readable by its owner only. Environment variables such as
GOOGLE_GENERATIVE_AI_API_KEY always take precedence over stored keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.GetConfigStore(container)
			if err != nil {
				return err
			}
			target, err := helpers.ParseScope(scope)
			if err != nil {
				return err
			}
			return runSetupWizard(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), store, target)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(domain.ScopeGlobal), "Write to the local or global file")
	return cmd
}

// runSetupWizard asks for each setting, then merges the answers into scope's file.
// A broken file is replaced, after a backup, instead of aborting the wizard.
func runSetupWizard(ctx context.Context, in io.Reader, out io.Writer, store *configinfra.FileStore, scope domain.Scope) error {
	current, err := store.LoadScope(ctx, scope)
	if err != nil {
		fmt.Fprintf(out, "Warning: %v\nStarting from defaults.\n", err)
		current = domain.DefaultConfig()
	}

	reader := bufio.NewReader(in)
	patch := promptForSettings(out, reader, current)

	if err := helpers.BackupIfExists(out, store, scope); err != nil {
		return err
	}
	if err := store.Save(ctx, configapp.Merge(current, patch), scope); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayCompletionInstructions(out, store.Path(scope), *patch.LLM.Provider)
	return nil
}

// promptForSettings builds the patch from the answers. The stored key is only replaced
// when a new one is typed.
func promptForSettings(out io.Writer, reader *bufio.Reader, current domain.Config) domain.ConfigPatch {
	fmt.Fprintln(out, "recspec setup")
	fmt.Fprintln(out)

	providers := make([]string, 0, len(domain.SupportedProviders))
	for _, p := range domain.SupportedProviders {
		providers = append(providers, string(p))
	}
	provider := domain.Provider(helpers.PromptForChoice(out, reader,
		"Generation provider", providers, string(current.LLM.Provider)))

	info, _ := provider.Info()
	_, hasKey := current.APIKey(provider)
	fmt.Fprintf(out, "Get a key at %s\n", info.KeyURL)
	secret := helpers.PromptForSecret(out, reader, fmt.Sprintf("API key for %s", provider), hasKey)

	languages := make([]string, 0, len(domain.SupportedLanguages))
	for _, l := range domain.SupportedLanguages {
		languages = append(languages, string(l))
	}
	language := domain.Language(helpers.PromptForChoice(out, reader,
		"Specification language", languages, string(current.Language)))

	typescript := helpers.PromptForYesNo(out, reader,
		"Generate TypeScript tests?", current.Output.TypeScript)
	edgeCases := helpers.PromptForYesNo(out, reader,
		"Include edge-case scenarios in specifications?", current.Generation.IncludeEdgeCases)

	patch := domain.ConfigPatch{
		LLM:        &domain.LLMPatch{Provider: &provider},
		Language:   &language,
		Output:     &domain.OutputPatch{TypeScript: &typescript},
		Generation: &domain.GenerationPatch{IncludeEdgeCases: &edgeCases},
	}
	if provider != current.LLM.Provider {
		// The model override belongs to the previous provider.
		patch.LLM.Model = domain.Ptr("")
	}
	if secret != "" {
		patch.LLM.APIKeys = map[domain.Provider]string{provider: secret}
	}
	return patch
}

// displayCompletionInstructions displays instructions after a successful setup
func displayCompletionInstructions(out io.Writer, configPath string, provider domain.Provider) {
	fmt.Fprintf(out, "\nConfiguration saved: %s\n\n", configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Verify your setup:")
	fmt.Fprintln(out, "     recspec doctor")
	fmt.Fprintln(out, "  2. Record a flow in Chrome DevTools Recorder, export it as JSON, then run:")
	fmt.Fprintln(out, "     recspec spec recording.json -o recording.feature")
	fmt.Fprintln(out, "     recspec code recording.feature -o tests")
	fmt.Fprintf(out, "\nThe %s environment variable overrides the stored key when set.\n", provider.EnvVar())
}
