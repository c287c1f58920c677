// Package config loads the optional pico.yaml project file.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/errors"
	"github.com/go-drift/pico/pkg/store"
)

// FileName is the project configuration file name.
const FileName = "pico.yaml"

// Config represents the optional pico.yaml configuration.
type Config struct {
	App   AppConfig  `yaml:"app"`
	State yaml.Node  `yaml:"state"`
	Refs  RefsConfig `yaml:"refs"`
	Log   LogConfig  `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// RefsConfig configures reference collection.
type RefsConfig struct {
	Marker string `yaml:"marker,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	RefMarker  string
	State      store.State
	LogLevel   slog.Level
	Verbose    bool
}

// LoadOptional reads pico.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes pico.yaml content.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// InitialState decodes the state section. An absent section is empty; a
// section that is not a mapping is malformed input.
func (c *Config) InitialState() (store.State, error) {
	if c.State.Kind == 0 || (c.State.Kind == yaml.ScalarNode && c.State.Tag == "!!null") {
		return store.State{}, nil
	}
	if c.State.Kind != yaml.MappingNode {
		return nil, &errors.PicoError{
			Op:   "config.InitialState",
			Kind: errors.KindInput,
			Err:  fmt.Errorf("%w: state must be a mapping (line %d)", errors.ErrMalformedInput, c.State.Line),
		}
	}
	// Nested mappings stay map[string]any.
	var state map[string]any
	if err := c.State.Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if state == nil {
		return store.State{}, nil
	}
	return store.State(state), nil
}

// Resolve loads pico.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	state, err := cfg.InitialState()
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	marker := strings.TrimSpace(cfg.Refs.Marker)
	if marker == "" {
		marker = core.DefaultRefMarker
	}

	level := slog.LevelInfo
	if raw := strings.TrimSpace(cfg.Log.Level); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid log.level %q: %w", raw, err)
		}
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		RefMarker:  marker,
		State:      state,
		LogLevel:   level,
		Verbose:    cfg.Log.Verbose,
	}, nil
}

// Logger returns a text logger writing to w at the configured level.
func (r *Resolved) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     r.LogLevel,
		AddSource: r.Verbose,
	})).With(slog.String("app", r.AppName))
}

// FindProjectRoot walks up from the current directory to find go.mod or
// pico.yaml.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{"go.mod", FileName} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a pico project (no go.mod or %s found)", FileName)
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// dir has no go.mod.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "pico_app"
	}
	return base
}
