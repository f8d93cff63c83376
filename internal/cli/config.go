package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/chocolatl/cocos-texture-packer/pkg/packer"
)

// projectConfig is the on-disk description of a pack run. Every field can
// also be given as a flag; flags win.
type projectConfig struct {
	Inputs     []string `toml:"inputs" yaml:"inputs"`
	Output     string   `toml:"output" yaml:"output"`
	Name       string   `toml:"name" yaml:"name"`
	Encoder    string   `toml:"encoder" yaml:"encoder"`
	Multiple   bool     `toml:"multiple" yaml:"multiple"`
	NameFormat string   `toml:"name_format" yaml:"name_format"`

	Packing packer.Overrides    `toml:"packing" yaml:"packing"`
	Write   packer.WriteOptions `toml:"write" yaml:"write"`
}

// loadConfig reads a TOML or YAML project file, chosen by extension.
// Relative inputs and output are resolved against the file's directory.
func loadConfig(path string) (*projectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg projectConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (must be .toml, .yaml or .yml)", ext)
	}

	base := filepath.Dir(path)
	for i, in := range cfg.Inputs {
		cfg.Inputs[i] = resolve(base, in)
	}
	if cfg.Output != "" {
		cfg.Output = resolve(base, cfg.Output)
	}
	return &cfg, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
