package helpers

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/recspec/internal/app"
	configapp "github.com/doeshing/recspec/internal/application/config"
	"github.com/doeshing/recspec/internal/domain"
	configinfra "github.com/doeshing/recspec/internal/infrastructure/config"
)

// GetConfigStore extracts the config store from container with error handling
func GetConfigStore(container *app.Container) (*configinfra.FileStore, error) {
	if container == nil || container.ConfigStore == nil {
		return nil, fmt.Errorf("config store unavailable")
	}
	return container.ConfigStore, nil
}

// ParseScope converts a --scope flag value. An empty value keeps the store default.
func ParseScope(value string) (domain.Scope, error) {
	scope := domain.Scope(strings.ToLower(strings.TrimSpace(value)))
	if scope == "" || scope.IsValid() {
		return scope, nil
	}
	return "", fmt.Errorf("unknown scope %q, expected %s or %s", value, domain.ScopeLocal, domain.ScopeGlobal)
}

// Backuper copies a scope's config file aside.
type Backuper interface {
	Backup(scope domain.Scope) (string, error)
}

// BackupIfExists copies the file backing scope aside and reports where it went.
func BackupIfExists(out io.Writer, store Backuper, scope domain.Scope) error {
	backupPath, err := store.Backup(scope)
	if err != nil {
		return fmt.Errorf("failed to create configuration backup: %w", err)
	}
	if backupPath != "" {
		fmt.Fprintf(out, "Existing config backed up to: %s\n", backupPath)
	}
	return nil
}

// WriteYAML renders v as YAML. Configurations must be redacted by the caller.
func WriteYAML(out io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

// IsCredentialKey reports whether a dotted key path addresses a stored API key.
func IsCredentialKey(keyPath string) bool {
	return configapp.IsCredentialKey(keyPath)
}
