// Package config persists configuration as JSON in two scopes: ./.recspec/config.json
// (local) and ~/.recspec/config.json (global). Local wins when both exist.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	configapp "github.com/doeshing/recspec/internal/application/config"
	"github.com/doeshing/recspec/internal/application/credential"
	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/pkg/filesystem"
	"github.com/doeshing/recspec/internal/ports"
)

// StoreOptions locates the two scopes. Empty fields fall back to the process defaults.
type StoreOptions struct {
	WorkDir string
	HomeDir string
	// OverridePath pins the active file. RECSPEC_CONFIG is used when empty.
	OverridePath string
}

// Location is the outcome of active path resolution.
type Location struct {
	Path  string
	Scope domain.Scope // empty when the path came from an override
	Found bool
}

// FileStore implements ports.ConfigStore over a ports.FileSystem.
type FileStore struct {
	fs       ports.FileSystem
	env      ports.Environment
	logger   ports.Logger
	workDir  string
	homeDir  string
	override string
}

// NewFileStore builds a new store.
func NewFileStore(fsys ports.FileSystem, env ports.Environment, logger ports.Logger, opts StoreOptions) *FileStore {
	s := &FileStore{
		fs:      fsys,
		env:     env,
		logger:  logger,
		workDir: opts.WorkDir,
		homeDir: opts.HomeDir,
	}
	if s.workDir == "" {
		s.workDir = "."
	}
	if s.homeDir == "" {
		s.homeDir = filesystem.UserHomeDir()
	}
	s.override = opts.OverridePath
	if s.override == "" && env != nil {
		if custom, ok := env.Lookup(domain.ConfigOverrideEnvVar); ok {
			s.override = custom
		}
	}
	if s.override != "" {
		s.override = filesystem.ExpandPath(s.override)
	}
	return s
}

// Path returns the file backing scope. An empty scope means local, or the override
// when one is set.
func (s *FileStore) Path(scope domain.Scope) string {
	switch scope {
	case domain.ScopeGlobal:
		return filepath.Join(s.homeDir, domain.ConfigDirName, domain.ConfigFileName)
	case domain.ScopeLocal:
		return filepath.Join(s.workDir, domain.ConfigDirName, domain.ConfigFileName)
	default:
		if s.override != "" {
			return s.override
		}
		return s.Path(domain.ScopeLocal)
	}
}

// Resolve finds the active file: the override if set, else local, else global.
func (s *FileStore) Resolve() (Location, error) {
	if s.override != "" {
		found, err := s.fs.FileExists(s.override)
		if err != nil {
			return Location{}, domain.NewConfigError("resolve configuration", err)
		}
		return Location{Path: s.override, Found: found}, nil
	}

	for _, scope := range []domain.Scope{domain.ScopeLocal, domain.ScopeGlobal} {
		path := s.Path(scope)
		found, err := s.fs.FileExists(path)
		if err != nil {
			return Location{}, domain.NewConfigError("resolve configuration", err)
		}
		if found {
			return Location{Path: path, Scope: scope, Found: true}, nil
		}
	}
	return Location{}, nil
}

// ResolveActivePath returns the active configuration file. ok is false when nothing has
// been persisted, which is not an error.
func (s *FileStore) ResolveActivePath() (path string, ok bool, err error) {
	loc, err := s.Resolve()
	if err != nil {
		return "", false, err
	}
	return loc.Path, loc.Found, nil
}

// Exists reports whether any configuration is persisted, using the same precedence as Load.
func (s *FileStore) Exists() (bool, error) {
	_, ok, err := s.ResolveActivePath()
	return ok, err
}

// Load implements ports.ConfigStore. Without a persisted file the defaults are returned.
func (s *FileStore) Load(ctx context.Context) (domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	path, ok, err := s.ResolveActivePath()
	if err != nil {
		return domain.Config{}, err
	}
	if !ok {
		s.debug("no configuration persisted, using defaults", nil)
		return domain.DefaultConfig(), nil
	}

	cfg, err := s.read(path)
	if err != nil {
		return domain.Config{}, err
	}
	s.debug("configuration loaded", map[string]interface{}{"path": path})
	return cfg, nil
}

func (s *FileStore) read(path string) (domain.Config, error) {
	text, err := s.fs.ReadTextFile(path)
	if err != nil {
		return domain.Config{}, domain.NewConfigError("read configuration "+path, err)
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return domain.Config{}, domain.NewConfigError("parse configuration "+path, err)
	}
	if err := configapp.ValidateDocument(doc); err != nil {
		return domain.Config{}, domain.NewConfigError("configuration "+path, err)
	}

	cfg := domain.DefaultConfig()
	if err := json.Unmarshal([]byte(text), &cfg); err != nil {
		return domain.Config{}, domain.NewConfigError("decode configuration "+path, err)
	}
	if err := configapp.Validate(cfg); err != nil {
		return domain.Config{}, domain.NewConfigError("configuration "+path, err)
	}
	return cfg, nil
}

// Save implements ports.ConfigStore. The file is written owner-only (0600) inside an
// owner-only directory.
func (s *FileStore) Save(ctx context.Context, cfg domain.Config, scope domain.Scope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if scope != "" && !scope.IsValid() {
		return domain.NewConfigError(fmt.Sprintf("unknown scope %q", scope), nil)
	}
	if err := configapp.Validate(cfg); err != nil {
		return domain.NewConfigError("refusing to save configuration", err)
	}

	path := s.Path(scope)
	if err := s.fs.MkdirAll(filepath.Dir(path), domain.ConfigDirPermissions); err != nil {
		return domain.NewConfigError("create configuration directory", err)
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return domain.NewConfigError("encode configuration", err)
	}
	if err := s.fs.WriteTextFile(path, string(raw)+"\n", domain.SecureFilePermissions); err != nil {
		return domain.NewConfigError("write configuration "+path, err)
	}

	s.debug("configuration saved", map[string]interface{}{"path": path, "scope": scope})
	return nil
}

// LoadScope reads the file backing scope. A missing file inherits from the layer below:
// local falls back to the effective configuration, global to the defaults.
func (s *FileStore) LoadScope(ctx context.Context, scope domain.Scope) (domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}
	if scope != "" && !scope.IsValid() {
		return domain.Config{}, domain.NewConfigError(fmt.Sprintf("unknown scope %q", scope), nil)
	}

	path := s.Path(scope)
	found, err := s.fs.FileExists(path)
	if err != nil {
		return domain.Config{}, domain.NewConfigError("resolve configuration", err)
	}
	if found {
		return s.read(path)
	}
	if scope == domain.ScopeGlobal {
		return domain.DefaultConfig(), nil
	}
	return s.Load(ctx)
}

// Update implements ports.ConfigStore: load scope's own configuration, deep-merge patch,
// persist to scope and return the result. Concurrent updates are last-writer-wins.
func (s *FileStore) Update(ctx context.Context, patch domain.ConfigPatch, scope domain.Scope) (domain.Config, error) {
	current, err := s.LoadScope(ctx, scope)
	if err != nil {
		return domain.Config{}, err
	}
	merged := configapp.Merge(current, patch)
	if err := s.Save(ctx, merged, scope); err != nil {
		return domain.Config{}, err
	}
	return merged, nil
}

// GetCredential applies the credential precedence (environment, then configuration)
// without promoting anything.
func (s *FileStore) GetCredential(ctx context.Context, provider domain.Provider) (string, bool, error) {
	cfg, err := s.Load(ctx)
	if err != nil {
		return "", false, err
	}
	secret, source := credential.Lookup(s.env, cfg, provider)
	return secret, source != credential.SourceNone, nil
}

// Backup copies scope's file to config.json.bak. It returns "" when there is nothing to back up.
func (s *FileStore) Backup(scope domain.Scope) (string, error) {
	path := s.Path(scope)
	found, err := s.fs.FileExists(path)
	if err != nil {
		return "", domain.NewConfigError("backup configuration", err)
	}
	if !found {
		return "", nil
	}

	text, err := s.fs.ReadTextFile(path)
	if err != nil {
		return "", domain.NewConfigError("backup configuration", err)
	}
	backupPath := path + ".bak"
	if err := s.fs.WriteTextFile(backupPath, text, domain.SecureFilePermissions); err != nil {
		return "", domain.NewConfigError("backup configuration", err)
	}
	return backupPath, nil
}

func (s *FileStore) debug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

var _ ports.ConfigStore = (*FileStore)(nil)
