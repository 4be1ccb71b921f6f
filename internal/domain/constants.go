package domain

import "time"

// File permissions constants
const (
	// ConfigDirPermissions keeps configuration directories private to the owner (rwx------)
	ConfigDirPermissions = 0o700
	// SecureFilePermissions is the permission for files that may hold credentials (rw-------)
	SecureFilePermissions = 0o600
	// OutputFilePermissions is the permission for generated artifacts (rw-r--r--)
	OutputFilePermissions = 0o644
	// OutputDirPermissions is the permission for generated artifact directories (rwxr-xr-x)
	OutputDirPermissions = 0o755
)

// Configuration locations
const (
	// ConfigDirName is the directory holding config.json in both scopes
	ConfigDirName = ".recspec"
	// ConfigFileName is the persisted configuration file name
	ConfigFileName = "config.json"
	// ConfigOverrideEnvVar points at an explicit configuration file
	ConfigOverrideEnvVar = "RECSPEC_CONFIG"
	// SetupCommand is the remediation command shown for missing credentials
	SetupCommand = "recspec setup"
)

// Generation defaults
const (
	// DefaultMaxTokens bounds text responses
	DefaultMaxTokens = 4096
	// DefaultCodeMaxTokens bounds the structured code bundle
	DefaultCodeMaxTokens = 8192
	// DefaultSpecTemperature keeps specifications close to the recording
	DefaultSpecTemperature = 0.3
	// DefaultCodeTemperature keeps generated code deterministic
	DefaultCodeTemperature = 0.2
	// DefaultRequestTimeout is applied by the CLI around one generation call
	DefaultRequestTimeout = 120 * time.Second
)
