// Package config loads the settings of gcalc. Values are layered: defaults,
// then the YAML file, then the environment (optionally seeded from a .env
// file), then command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ltungv/gcalc/internal/calc"
	"github.com/ltungv/gcalc/internal/logging"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Environment variables read by ApplyEnv and LoadDotEnv.
const (
	EnvPath       = "GCALC_ENV_PATH"
	EnvPrecedence = "GCALC_PRECEDENCE"
	EnvOnError    = "GCALC_ON_ERROR"
	EnvFormat     = "GCALC_FORMAT"
	EnvLogLevel   = "GCALC_LOG_LEVEL"
)

const defaultEnvPath = ".env"

type Config struct {
	Precedence string `yaml:"precedence"`
	OnError    string `yaml:"on_error"`
	Format     string `yaml:"format"`
	LogLevel   string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Precedence: string(calc.PrecedenceInverted),
		OnError:    string(calc.OnErrorSkip),
		Format:     FormatText,
		LogLevel:   "warn",
	}
}

// Decode overlays the YAML document read from r on top of cfg. Unknown keys
// are rejected.
func (cfg *Config) Decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML file at path on top of cfg.
func (cfg *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return cfg.Decode(f)
}

// LoadDotEnv loads environment variables from a .env file. It uses the
// GCALC_ENV_PATH environment variable to determine the path to the file and
// ignores a missing file.
func LoadDotEnv() error {
	envPath := os.Getenv(EnvPath)
	if envPath == "" {
		envPath = defaultEnvPath
	}

	err := godotenv.Load(envPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv overrides the settings that have a non-empty environment variable.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for env, field := range map[string]*string{
		EnvPrecedence: &cfg.Precedence,
		EnvOnError:    &cfg.OnError,
		EnvFormat:     &cfg.Format,
		EnvLogLevel:   &cfg.LogLevel,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
		}
	}
}

// Validate rejects settings that name an unknown value.
func (cfg *Config) Validate() error {
	var errs []error
	if _, err := calc.ParsePrecedence(cfg.Precedence); err != nil {
		errs = append(errs, err)
	}
	if _, err := calc.ParseErrorPolicy(cfg.OnError); err != nil {
		errs = append(errs, err)
	}
	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", cfg.Format))
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Options converts the settings for calc.Run. The configuration must have
// been validated.
func (cfg *Config) Options() calc.Options {
	precedence, _ := calc.ParsePrecedence(cfg.Precedence)
	onError, _ := calc.ParseErrorPolicy(cfg.OnError)
	return calc.Options{Precedence: precedence, OnError: onError}
}
