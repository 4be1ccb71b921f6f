// Package env is the only code allowed to touch the process environment.
package env

import (
	"fmt"
	"os"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// Process reads from the real process environment.
type Process struct{}

// Lookup implements ports.Environment.
func (Process) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

var _ ports.Environment = Process{}

// PromoteCredentialToEnvironment exports secret under provider's canonical variable so
// SDKs that only read the environment see it for the rest of the process. The promotion
// is one way: nothing ever copies environment values back into configuration.
// Repeating it is harmless.
func PromoteCredentialToEnvironment(provider domain.Provider, secret string) error {
	name := provider.EnvVar()
	if name == "" {
		return domain.NewConfigError(fmt.Sprintf("unsupported provider %q", provider), nil)
	}
	if secret == "" {
		return nil
	}
	if err := os.Setenv(name, secret); err != nil {
		return domain.NewConfigError("export "+name, err)
	}
	return nil
}
