// Package config loads shaderc settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/shader"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "shaderc.toml"

// Config holds everything shaderc needs to build a program.
type Config struct {
	ShaderDir string        `toml:"shader_dir" yaml:"shader_dir"`
	Vertex    string        `toml:"vertex" yaml:"vertex"`
	Fragment  string        `toml:"fragment" yaml:"fragment"`
	LogLimit  int           `toml:"log_limit" yaml:"log_limit"`
	Tolerate  []string      `toml:"tolerate" yaml:"tolerate"`
	Verbose   bool          `toml:"verbose" yaml:"verbose"`
	Context   ContextConfig `toml:"context" yaml:"context"`
}

// ContextConfig selects the GL context shaderc creates.
type ContextConfig struct {
	Major   int  `toml:"major" yaml:"major"`
	Minor   int  `toml:"minor" yaml:"minor"`
	Core    bool `toml:"core" yaml:"core"`
	Visible bool `toml:"visible" yaml:"visible"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		ShaderDir: "shaders",
		Vertex:    "vshader.glsl",
		Fragment:  "fshader.glsl",
		LogLimit:  shader.DefaultLogLimit,
		Tolerate:  []string{shader.InvalidEnum.Constant()},
		Context: ContextConfig{
			Major: 4,
			Minor: 1,
			Core:  true,
		},
	}
}

// Load reads path on top of Default. The format follows the extension:
// .yaml and .yml are YAML, anything else TOML.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}

	// Relative shader directories are taken relative to the config file.
	if cfg.ShaderDir != "" && !filepath.IsAbs(cfg.ShaderDir) {
		cfg.ShaderDir = filepath.Join(filepath.Dir(path), cfg.ShaderDir)
	}
	return cfg, nil
}

// LoadOptional loads path, or DefaultFile when path is empty. A missing
// DefaultFile is not an error; a missing explicit path is.
func LoadOptional(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the settings and returns the parsed tolerated codes.
func (c Config) Validate() ([]shader.ErrorCode, error) {
	var errs []error
	if c.Vertex == "" {
		errs = append(errs, errors.New("vertex shader name is empty"))
	}
	if c.Fragment == "" {
		errs = append(errs, errors.New("fragment shader name is empty"))
	}
	if err := checkStage(c.Vertex, shader.Vertex); err != nil {
		errs = append(errs, err)
	}
	if err := checkStage(c.Fragment, shader.Fragment); err != nil {
		errs = append(errs, err)
	}
	if c.LogLimit <= 0 {
		errs = append(errs, fmt.Errorf("log_limit must be positive, got %d", c.LogLimit))
	}
	if c.Context.Major < 3 || (c.Context.Major == 3 && c.Context.Minor < 2) {
		errs = append(errs, fmt.Errorf("context version %d.%d is below 3.2", c.Context.Major, c.Context.Minor))
	}

	codes := make([]shader.ErrorCode, 0, len(c.Tolerate))
	for _, name := range c.Tolerate {
		code, err := shader.ParseErrorCode(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		codes = append(codes, code)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return codes, nil
}

// checkStage rejects a name whose suffix names the other stage, e.g. a
// .frag file given as the vertex shader. Suffixes without a stage, such
// as .glsl, are accepted.
func checkStage(name string, want shader.Kind) error {
	got, err := shader.ParseKind(filepath.Ext(name))
	if err != nil || got == want {
		return nil
	}
	return fmt.Errorf("%w: %s shader %q has a %s suffix", shader.ErrKindMismatch, want, name, got)
}
