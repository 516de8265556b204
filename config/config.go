// Package config loads diff options from TOML or YAML files.
//
// A file has two optional tables:
//
//	[diff]
//	encoding = "xterm-256"
//	allow_diff = true
//	allow_legend = false
//	max_length = 65536
//
//	[engine]
//	timeout = "500ms"
//	edit_cost = 4
//	check_lines = true
//	cleanup = "semantic"
//
// Keys that are absent keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/kenshaw/requirements/chardiff"
	"github.com/kenshaw/requirements/terminal"
	"gopkg.in/yaml.v3"
)

// Config holds the options read from a file.
type Config struct {
	Encoding    terminal.Encoding
	AllowDiff   bool
	AllowLegend bool
	MaxLength   int
	Engine      *chardiff.Config
}

// Default returns the options used when no file is given.
func Default() *Config {
	return &Config{
		Encoding:    terminal.None,
		AllowDiff:   true,
		AllowLegend: true,
		Engine:      chardiff.NewDefaultConfig(),
	}
}

type fileConfig struct {
	Diff   diffTable   `toml:"diff" yaml:"diff"`
	Engine engineTable `toml:"engine" yaml:"engine"`
}

type diffTable struct {
	Encoding    string `toml:"encoding" yaml:"encoding"`
	AllowDiff   bool   `toml:"allow_diff" yaml:"allow_diff"`
	AllowLegend bool   `toml:"allow_legend" yaml:"allow_legend"`
	MaxLength   int64  `toml:"max_length" yaml:"max_length"`
}

type engineTable struct {
	Timeout    string `toml:"timeout" yaml:"timeout"`
	EditCost   int64  `toml:"edit_cost" yaml:"edit_cost"`
	CheckLines bool   `toml:"check_lines" yaml:"check_lines"`
	Cleanup    string `toml:"cleanup" yaml:"cleanup"`
}

// Load reads the file at path. The format is chosen by extension: .toml,
// .yaml or .yml.
func Load(path string) (*Config, error) {
	var (
		fc      fileConfig
		defined func(keys ...string) bool
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		fc, defined, err = decodeTOML(path)
	case ".yaml", ".yml":
		fc, defined, err = decodeYAML(path)
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
	if err != nil {
		return nil, err
	}
	cfg, err := fc.apply(defined)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(path string) (fileConfig, func(...string) bool, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fileConfig{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return fileConfig{}, nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return fc, meta.IsDefined, nil
}

func decodeYAML(path string) (fileConfig, func(...string) bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, nil, err
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	var keys map[string]map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return fileConfig{}, nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	defined := func(k ...string) bool {
		table, ok := keys[k[0]]
		if !ok || len(k) == 1 {
			return ok
		}
		_, ok = table[k[1]]
		return ok
	}
	return fc, defined, nil
}

func (fc fileConfig) apply(defined func(...string) bool) (*Config, error) {
	cfg := Default()
	if defined("diff", "encoding") {
		enc, err := terminal.ParseEncoding(fc.Diff.Encoding)
		if err != nil {
			return nil, fmt.Errorf("diff.encoding: %w", err)
		}
		cfg.Encoding = enc
	}
	if defined("diff", "allow_diff") {
		cfg.AllowDiff = fc.Diff.AllowDiff
	}
	if defined("diff", "allow_legend") {
		cfg.AllowLegend = fc.Diff.AllowLegend
	}
	if defined("diff", "max_length") {
		n, err := nonNegative(fc.Diff.MaxLength)
		if err != nil {
			return nil, fmt.Errorf("diff.max_length: %w", err)
		}
		cfg.MaxLength = n
	}
	if defined("engine", "timeout") {
		d, err := time.ParseDuration(fc.Engine.Timeout)
		if err != nil {
			return nil, fmt.Errorf("engine.timeout: %w", err)
		}
		cfg.Engine.Timeout = d
	}
	if defined("engine", "edit_cost") {
		n, err := nonNegative(fc.Engine.EditCost)
		if err != nil {
			return nil, fmt.Errorf("engine.edit_cost: %w", err)
		}
		cfg.Engine.EditCost = n
	}
	if defined("engine", "check_lines") {
		cfg.Engine.CheckLines = fc.Engine.CheckLines
	}
	if defined("engine", "cleanup") {
		c, err := parseCleanup(fc.Engine.Cleanup)
		if err != nil {
			return nil, fmt.Errorf("engine.cleanup: %w", err)
		}
		cfg.Engine.Cleanup = c
	}
	return cfg, nil
}

func nonNegative(v int64) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("must be non-negative, got %d", v)
	}
	return safecast.Conv[int](v)
}

func parseCleanup(s string) (chardiff.Cleanup, error) {
	for _, c := range []chardiff.Cleanup{chardiff.CleanupSemantic, chardiff.CleanupEfficiency, chardiff.CleanupNone} {
		if strings.EqualFold(c.String(), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown cleanup %q", s)
}
