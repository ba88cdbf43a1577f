// Package config loads the runtime configuration document. Known fields
// decode into typed structs; unknown top-level keys are kept as raw yaml
// sections so user hooks can carry their own settings through the same
// file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cartoon-raccoon/perch/internal/bindings"
	"github.com/cartoon-raccoon/perch/internal/layout"
)

// Config is the top-level configuration document.
type Config struct {
	Workspaces          []string
	Layouts             []string
	Gaps                Gaps
	BorderWidth         int
	FloatClasses        []string
	FocusFollowsPointer bool
	Outputs             []OutputConfig
	Keybinds            []KeybindConfig
	Mousebinds          []MousebindConfig

	sections map[string]*yaml.Node
}

// Gaps describes the inner and outer pixel gaps applied during layout.
type Gaps struct {
	Inner int `yaml:"inner"`
	Outer int `yaml:"outer"`
}

// OutputConfig declares one entry of the output arrangement. At most one
// position field may be set; none means the server's current placement.
type OutputConfig struct {
	Name  string `yaml:"name"`
	Make  string `yaml:"make"`
	Model string `yaml:"model"`

	At      *PointConfig `yaml:"at"`
	RightOf string       `yaml:"rightOf"`
	LeftOf  string       `yaml:"leftOf"`
	Above   string       `yaml:"above"`
	Below   string       `yaml:"below"`
	Mirror  string       `yaml:"mirror"`
}

// PointConfig is an absolute screen coordinate.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// KeybindConfig maps a key chord to either a named manager action or a
// command to spawn. Exactly one of the two must be set.
type KeybindConfig struct {
	Chord  string `yaml:"chord"`
	Action string `yaml:"action"`
	Spawn  string `yaml:"spawn"`
}

// MousebindConfig maps a pointer chord to a named manager action.
type MousebindConfig struct {
	Chord  string `yaml:"chord"`
	Action string `yaml:"action"`
}

// UnmarshalYAML decodes the known fields and stashes every unrecognized
// top-level key as a raw section.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		Workspaces          []string          `yaml:"workspaces"`
		Layouts             []string          `yaml:"layouts"`
		Gaps                Gaps              `yaml:"gaps"`
		BorderWidth         *int              `yaml:"borderWidth"`
		FloatClasses        []string          `yaml:"floatClasses"`
		FocusFollowsPointer bool              `yaml:"focusFollowsPointer"`
		Outputs             []OutputConfig    `yaml:"outputs"`
		Keybinds            []KeybindConfig   `yaml:"keybinds"`
		Mousebinds          []MousebindConfig `yaml:"mousebinds"`
	}
	known := map[string]bool{
		"workspaces": true, "layouts": true, "gaps": true,
		"borderWidth": true, "floatClasses": true,
		"focusFollowsPointer": true, "outputs": true,
		"keybinds": true, "mousebinds": true,
	}

	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Workspaces = raw.Workspaces
	c.Layouts = raw.Layouts
	c.Gaps = raw.Gaps
	c.FloatClasses = raw.FloatClasses
	c.FocusFollowsPointer = raw.FocusFollowsPointer
	c.Outputs = raw.Outputs
	c.Keybinds = raw.Keybinds
	c.Mousebinds = raw.Mousebinds
	if raw.BorderWidth != nil {
		c.BorderWidth = *raw.BorderWidth
	} else {
		c.BorderWidth = -1
	}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config must be a mapping")
	}
	c.sections = map[string]*yaml.Node{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if !known[key] {
			c.sections[key] = value.Content[i+1]
		}
	}
	return nil
}

// Section decodes the named extensible section into out. The second return
// is false when the document has no such section.
func (c *Config) Section(name string, out interface{}) (bool, error) {
	node, ok := c.sections[name]
	if !ok {
		return false, nil
	}
	if err := node.Decode(out); err != nil {
		return true, fmt.Errorf("section %q: %w", name, err)
	}
	return true, nil
}

// GetKey reads a scalar from an extensible section.
func (c *Config) GetKey(section, key string) (string, bool) {
	node, ok := c.sections[section]
	if !ok || node.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1].Value, true
		}
	}
	return "", false
}

// FloatsClass reports whether windows of the given class are configured to
// float.
func (c *Config) FloatsClass(class string) bool {
	for _, fc := range c.FloatClasses {
		if fc == class {
			return true
		}
	}
	return false
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{BorderWidth: -1}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	cfg.BorderWidth = -1
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Workspaces) == 0 {
		c.Workspaces = []string{"1", "2", "3", "4", "5"}
	}
	if len(c.Layouts) == 0 {
		c.Layouts = []string{"dtiled", "floating"}
	}
	if c.BorderWidth < 0 {
		c.BorderWidth = 2
	}
}

// Validate performs basic sanity checks.
func (c *Config) Validate() error {
	if c.Gaps.Inner < 0 {
		return fmt.Errorf("gaps.inner cannot be negative")
	}
	if c.Gaps.Outer < 0 {
		return fmt.Errorf("gaps.outer cannot be negative")
	}

	seen := map[string]struct{}{}
	for _, ws := range c.Workspaces {
		if ws == "" {
			return fmt.Errorf("workspace names cannot be empty")
		}
		if _, dup := seen[ws]; dup {
			return fmt.Errorf("duplicate workspace %q", ws)
		}
		seen[ws] = struct{}{}
	}

	for _, name := range c.Layouts {
		if _, ok := layout.New(name); !ok {
			return fmt.Errorf("unknown layout %q", name)
		}
	}

	if err := c.validateOutputs(); err != nil {
		return err
	}

	for _, kb := range c.Keybinds {
		if _, err := bindings.ParseKeyChord(kb.Chord); err != nil {
			return fmt.Errorf("keybind: %w", err)
		}
		if (kb.Action == "") == (kb.Spawn == "") {
			return fmt.Errorf("keybind %q: exactly one of action or spawn", kb.Chord)
		}
	}
	for _, mb := range c.Mousebinds {
		if _, err := bindings.ParseMouseChord(mb.Chord); err != nil {
			return fmt.Errorf("mousebind: %w", err)
		}
		if mb.Action == "" {
			return fmt.Errorf("mousebind %q: action required", mb.Chord)
		}
	}
	return nil
}

func (c *Config) validateOutputs() error {
	names := map[string]struct{}{}
	for _, out := range c.Outputs {
		if out.Name == "" && out.Make == "" && out.Model == "" {
			return fmt.Errorf("output entry with no identifying fields")
		}
		if out.Name != "" {
			if _, dup := names[out.Name]; dup {
				return fmt.Errorf("duplicate output %q", out.Name)
			}
			names[out.Name] = struct{}{}
		}
		set := 0
		for _, ref := range []string{out.RightOf, out.LeftOf, out.Above, out.Below, out.Mirror} {
			if ref != "" {
				set++
			}
		}
		if out.At != nil {
			set++
		}
		if set > 1 {
			return fmt.Errorf("output %q: more than one position", out.Name)
		}
	}
	for _, out := range c.Outputs {
		for _, ref := range []string{out.RightOf, out.LeftOf, out.Above, out.Below, out.Mirror} {
			if ref == "" {
				continue
			}
			if _, ok := names[ref]; !ok {
				return fmt.Errorf("output %q: unknown referent %q", out.Name, ref)
			}
		}
	}
	return nil
}
