// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/jonesrussell/north-cloud/postbot/internal/config"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/spf13/viper"
)

// Version is the build version, set with -ldflags "-X ...common.Version=...".
var Version = "0.1.0"

// Viper keys bound by the root command.
const (
	KeyConfig = "config"
	KeyDebug  = "app.debug"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger logger.Logger
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps loads and validates the configuration and creates the
// logger. --debug forces debug level.
func NewCommandDeps() (CommandDeps, error) {
	path := viper.GetString(KeyConfig)
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}
	if viper.GetBool(KeyDebug) {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}
	if err = cfg.Validate(); err != nil {
		return CommandDeps{}, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log.With(logger.String("service", cfg.Service.Name)),
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
