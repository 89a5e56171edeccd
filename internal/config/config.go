package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jmagar/panopto-cli/internal/helpers"
	"github.com/jmagar/panopto-cli/internal/model"
)

// LoadedConfigPath tracks which config file was loaded; empty when only
// defaults and the environment were used.
var LoadedConfigPath string

var validate = validator.New()

// ErrConfigNotFound is returned when an explicitly requested config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// SearchPaths returns the locations checked when no --config is given.
func SearchPaths() []string {
	paths := []string{"panopto.json"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".panopto", "config.json"),
			filepath.Join(homeDir, ".config", "panopto", "config.json"),
		)
	}
	return paths
}

// ReadConfig loads the config file at explicit, or the first file found in
// SearchPaths. With no file, defaults and PANOPTO_* environment variables
// apply. Environment variables always override file values.
func ReadConfig(explicit string) (*model.Config, error) {
	var cfg model.Config

	path, err := locate(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		LoadedConfigPath = ""
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
	}
	LoadedConfigPath = path
	return &cfg, nil
}

func locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrConfigNotFound, explicit, err)
		}
		return explicit, nil
	}
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// Validate checks field constraints declared on model.Config.
func Validate(cfg *model.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParseArgs parses CLI arguments using go-arg.
func ParseArgs() *model.Args {
	var args model.Args
	arg.MustParse(&args)
	return &args
}

// ParseCfg reads config, parses CLI args, and returns the resolved Config.
func ParseCfg() (*model.Config, error) {
	return Resolve(ParseArgs())
}

// Resolve loads the config named by args (or found on the search path),
// applies flag overrides, validates the result and expands URL lists.
func Resolve(args *model.Args) (*model.Config, error) {
	cfg, err := ReadConfig(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if args.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(args.LogLevel))
	}
	if args.APILog != "" {
		cfg.APILogPath = args.APILog
	}
	if args.Timeout != -1 {
		cfg.TimeoutSeconds = args.Timeout
	}
	if args.ProbeHLS {
		cfg.ProbeHLS = true
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	cfg.JSONOutput = args.JSON
	cfg.OutputPath = strings.TrimSpace(args.OutPath)
	cfg.Urls, err = helpers.ProcessUrls(args.Urls)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
