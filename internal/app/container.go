package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/doeshing/recspec/internal/application/credential"
	"github.com/doeshing/recspec/internal/application/doctor"
	"github.com/doeshing/recspec/internal/application/pipeline"
	"github.com/doeshing/recspec/internal/infrastructure/ai"
	"github.com/doeshing/recspec/internal/infrastructure/config"
	"github.com/doeshing/recspec/internal/infrastructure/env"
	"github.com/doeshing/recspec/internal/pkg/filesystem"
	"github.com/doeshing/recspec/internal/pkg/logger"
	"github.com/doeshing/recspec/internal/ports"
)

// Options tunes the dependency graph for one CLI invocation.
type Options struct {
	Verbose bool
	// ConfigPath pins the active config file, overriding RECSPEC_CONFIG.
	ConfigPath string
	// LogFile enables the rotating JSON log.
	LogFile string
	// RunID tags every log entry. A random id is generated when empty.
	RunID string
	// WorkDir anchors the local scope. The process working directory is used when empty.
	WorkDir string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	RunID       string
	Files       ports.FileSystem
	ConfigStore *config.FileStore
	Credentials *credential.Resolver
	Gateway     *ai.Gateway
	Pipeline    *pipeline.Service
	Doctor      *doctor.Service
	Logger      *logger.ZapLogger
}

// BuildContainer constructs the dependency graph. Configuration is not loaded here so that
// `config` and `setup` keep working when the persisted file is broken.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		workDir = wd
	}

	log := logger.New(logger.Options{
		Verbose: opts.Verbose,
		File:    filesystem.ExpandPath(opts.LogFile),
	}).With(map[string]interface{}{"run_id": runID})

	files := filesystem.NewOS()
	processEnv := env.Process{}

	store := config.NewFileStore(files, processEnv, log, config.StoreOptions{
		WorkDir:      workDir,
		OverridePath: opts.ConfigPath,
	})
	resolver := credential.NewResolver(processEnv, store, env.PromoteCredentialToEnvironment, log)
	gateway := ai.NewGateway(store, resolver, ai.NewFactory(), log)

	pipelineService := &pipeline.Service{
		Config:    store,
		Generator: gateway,
		Files:     files,
		Logger:    log,
	}

	doctorService := &doctor.Service{
		Config:      store,
		Credentials: resolver,
	}

	if path, ok, err := store.ResolveActivePath(); err == nil {
		log.Debug("container ready", map[string]interface{}{
			"config_path":  path,
			"config_found": ok,
			"work_dir":     workDir,
		})
	}

	return &Container{
		RunID:       runID,
		Files:       files,
		ConfigStore: store,
		Credentials: resolver,
		Gateway:     gateway,
		Pipeline:    pipelineService,
		Doctor:      doctorService,
		Logger:      log,
	}, nil
}
