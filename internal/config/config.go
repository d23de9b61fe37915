// Package config loads paramgen.yml.
//
// A missing file is not an error: every setting has a default, and the
// built-in parameter table needs no configuration at all. Settings can be
// overridden from the environment with a PARAMGEN_ prefix
// (PARAMGEN_GENERATOR, PARAMGEN_PYTHON, ...).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/simonhull/paramgen/internal/render"
	"github.com/simonhull/paramgen/internal/verify"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "paramgen.yml"

// Config holds everything paramgen.yml can set
type Config struct {
	// Generator is the tool name in the "do not modify" warning.
	Generator string `mapstructure:"generator" validate:"required"`
	// Import is the module Param and Params are imported from.
	Import string `mapstructure:"import" validate:"required"`
	// Python is the interpreter used by --verify.
	Python string `mapstructure:"python" validate:"required"`
	// Templates optionally points at a directory with a templates/ subdir
	// replacing the embedded templates.
	Templates string `mapstructure:"templates"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn warning error silent off"`
	// Targets are the files `generate --all` and `check --all` work on.
	Targets []Target `mapstructure:"targets" validate:"unique=Out,dive"`

	// File is the config file that was read, or "" when defaults are used.
	File string `mapstructure:"-"`
}

// Target pairs a schema with the module generated from it.
// An empty Schema selects the built-in shared table.
type Target struct {
	Schema string `mapstructure:"schema"`
	Out    string `mapstructure:"out" validate:"required"`
}

var validate = validator.New()

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Generator: render.DefaultGenerator,
		Import:    render.DefaultImportModule,
		Python:    verify.DefaultPython,
		LogLevel:  "warn",
	}
}

// Load reads the config file at path. A missing file yields the defaults
// (still subject to environment overrides); any other read, parse or
// validation problem is an error. Relative target and template paths are
// resolved against the directory of the config file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	def := Default()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("generator", def.Generator)
	v.SetDefault("import", def.Import)
	v.SetDefault("python", def.Python)
	v.SetDefault("templates", "")
	v.SetDefault("log_level", def.LogLevel)

	// Enable environment variable overrides
	v.SetEnvPrefix("PARAMGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	found := true
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		found = false
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if found {
		cfg.File = path
		cfg.resolvePaths(filepath.Dir(path))
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// resolvePaths makes relative paths relative to dir
func (c *Config) resolvePaths(dir string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	c.Templates = join(c.Templates)
	for i := range c.Targets {
		c.Targets[i].Schema = join(c.Targets[i].Schema)
		c.Targets[i].Out = join(c.Targets[i].Out)
	}
}

// Exists reports whether a config file is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
