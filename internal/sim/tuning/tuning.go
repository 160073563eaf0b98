package tuning

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ropesim/internal/sim/rope"
)

const (
	NamePart1 = "part1"
	NamePart2 = "part2"
)

var (
	ErrDuplicateName = errors.New("duplicate rope name")
	ErrMissingName   = errors.New("rope name is required")
	ErrNoRopes       = errors.New("at least one rope is required")
	ErrNotFound      = errors.New("no such rope")
)

type Config struct {
	Ropes []RopeSpec `yaml:"ropes"`

	// TraceEvery records every n-th step to a trace (the final step is
	// always recorded).
	TraceEvery int `yaml:"trace_every"`
}

type RopeSpec struct {
	Name   string `yaml:"name"`
	Length int    `yaml:"length"`
	Policy string `yaml:"policy"`
}

// Defaults binds the leash rule to the two-segment rope and the compass rule
// to the ten-segment rope.
func Defaults() Config {
	return Config{
		Ropes: []RopeSpec{
			{Name: NamePart1, Length: 2, Policy: rope.PolicyLeash},
			{Name: NamePart2, Length: 10, Policy: rope.PolicyCompass},
		},
		TraceEvery: 1,
	}
}

// Load reads a ropes.yaml. An empty path yields Defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, &rope.ConfigError{Err: err}
	}
	return Parse(raw)
}

// Parse decodes and validates a ropes.yaml document. Keys the document omits
// keep their default values.
func Parse(raw []byte) (Config, error) {
	cfg := Defaults()
	if err := validateDocument(raw); err != nil {
		return cfg, &rope.ConfigError{Err: fmt.Errorf("ropes.yaml: %w", err)}
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, &rope.ConfigError{Err: fmt.Errorf("ropes.yaml: %w", err)}
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("ropes.yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) Normalize() {
	for i := range c.Ropes {
		s := &c.Ropes[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Policy = strings.ToLower(strings.TrimSpace(s.Policy))
		if s.Policy == "" {
			s.Policy = defaultPolicy(s.Length)
		}
	}
	if c.TraceEvery <= 0 {
		c.TraceEvery = 1
	}
}

// defaultPolicy keeps the historical pairing when a spec leaves the policy
// out: leash for two segments, compass for anything longer.
func defaultPolicy(length int) string {
	if length == 2 {
		return rope.PolicyLeash
	}
	return rope.PolicyCompass
}

func (c Config) Validate() error {
	if len(c.Ropes) == 0 {
		return &rope.ConfigError{Param: "ropes", Value: 0, Err: ErrNoRopes}
	}
	seen := make(map[string]bool, len(c.Ropes))
	for _, s := range c.Ropes {
		if s.Name == "" {
			return &rope.ConfigError{Param: "name", Value: `""`, Err: ErrMissingName}
		}
		if seen[s.Name] {
			return &rope.ConfigError{Param: "name", Value: s.Name, Err: ErrDuplicateName}
		}
		seen[s.Name] = true
		if s.Length < 2 {
			return &rope.ConfigError{Param: s.Name + ".length", Value: s.Length, Err: rope.ErrTooShort}
		}
		if _, err := rope.PolicyByName(s.Policy); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the rope spec with the given name.
func (c Config) Lookup(name string) (RopeSpec, error) {
	for _, s := range c.Ropes {
		if s.Name == name {
			return s, nil
		}
	}
	return RopeSpec{}, &rope.ConfigError{Param: "rope", Value: name, Err: ErrNotFound}
}

// ForPart picks the part1 or part2 rope.
func (c Config) ForPart(part2 bool) (RopeSpec, error) {
	if part2 {
		return c.Lookup(NamePart2)
	}
	return c.Lookup(NamePart1)
}

// Build constructs a fresh rope for this spec.
func (s RopeSpec) Build() (*rope.Rope, error) {
	p, err := rope.PolicyByName(s.Policy)
	if err != nil {
		return nil, err
	}
	return rope.New(s.Length, p)
}
