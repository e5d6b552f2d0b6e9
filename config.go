package adorn

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Default timings, in seconds.
const (
	DefaultFadeInTime  = 0.25
	DefaultFadeOutTime = 1.0
	DefaultCloseDelay  = 2.0
)

// Config is the configuration surface of an Adorner. Durations are in
// seconds. Keys missing from YAML keep their DefaultConfig values.
type Config struct {
	HorizontalPlacement Placement `yaml:"horizontalPlacement"`
	VerticalPlacement   Placement `yaml:"verticalPlacement"`
	OffsetX             float64   `yaml:"offsetX"`
	OffsetY             float64   `yaml:"offsetY"`
	PositionX           *float64  `yaml:"positionX,omitempty"`
	PositionY           *float64  `yaml:"positionY,omitempty"`

	HoverShowEnabled bool    `yaml:"hoverShowEnabled"`
	FadeInTime       float64 `yaml:"fadeInDuration"`
	FadeOutTime      float64 `yaml:"fadeOutDuration"`
	CloseDelay       float64 `yaml:"hoverCloseDelay"`

	// AdornedPartName, when set, adorns the named descendant of the host
	// instead of the host itself.
	AdornedPartName string `yaml:"adornedPartName,omitempty"`

	// Visible is the initial (or reloaded) value of the visibility flag.
	Visible bool `yaml:"visible"`
}

// DefaultConfig returns the default adorner configuration: inside placement
// on both axes, hover show enabled, 0.25s fade in, 1s fade out, 2s close delay.
func DefaultConfig() Config {
	return Config{
		HorizontalPlacement: PlacementInside,
		VerticalPlacement:   PlacementInside,
		HoverShowEnabled:    true,
		FadeInTime:          DefaultFadeInTime,
		FadeOutTime:         DefaultFadeOutTime,
		CloseDelay:          DefaultCloseDelay,
	}
}

// Placement returns the placement-engine view of the config.
func (c Config) Placement() PlacementConfig {
	return PlacementConfig{
		Horizontal: c.HorizontalPlacement,
		Vertical:   c.VerticalPlacement,
		OffsetX:    c.OffsetX,
		OffsetY:    c.OffsetY,
		PositionX:  c.PositionX,
		PositionY:  c.PositionY,
	}
}

// clone returns c with its position overrides copied, so the result shares
// no pointers with c.
func (c Config) clone() Config {
	c.PositionX = cloneFloat(c.PositionX)
	c.PositionY = cloneFloat(c.PositionY)
	return c
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CloseDelayDuration returns CloseDelay as a time.Duration.
func (c Config) CloseDelayDuration() time.Duration {
	return secondsToDuration(c.CloseDelay)
}

// Validate reports durations that are negative.
func (c Config) Validate() error {
	if c.FadeInTime < 0 {
		return fmt.Errorf("%w: fadeInDuration %v is negative", ErrInvalidConfig, c.FadeInTime)
	}
	if c.FadeOutTime < 0 {
		return fmt.Errorf("%w: fadeOutDuration %v is negative", ErrInvalidConfig, c.FadeOutTime)
	}
	if c.CloseDelay < 0 {
		return fmt.Errorf("%w: hoverCloseDelay %v is negative", ErrInvalidConfig, c.CloseDelay)
	}
	return nil
}

// UnmarshalYAML decodes onto DefaultConfig so omitted keys keep defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	p := plain(DefaultConfig())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

// ParsePlacement parses "inside" or "outside" (case-insensitive).
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inside":
		return PlacementInside, nil
	case "outside":
		return PlacementOutside, nil
	default:
		return 0, fmt.Errorf("%w: unknown placement %q", ErrInvalidConfig, s)
	}
}

// UnmarshalYAML parses a placement scalar.
func (p *Placement) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParsePlacement(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalYAML writes the placement as its name.
func (p Placement) MarshalYAML() (any, error) {
	return p.String(), nil
}

// ConfigFile is a set of named adorner configs, keyed by adorner name.
type ConfigFile struct {
	Adorners map[string]Config `yaml:"adorners"`
}

// ParseConfig parses a single adorner config from YAML and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("adorn: parse adorner config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("adorn: parse adorner config: %w", err)
	}
	return cfg, nil
}

// Names returns the adorner names in f, sorted.
func (f ConfigFile) Names() []string {
	return slices.Sorted(maps.Keys(f.Adorners))
}

// ParseConfigFile parses a ConfigFile from YAML and validates every entry.
// Invalid entries are reported together, in name order; use
// multierr.Errors to split the result.
func ParseConfigFile(data []byte) (ConfigFile, error) {
	var f ConfigFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ConfigFile{}, fmt.Errorf("adorn: parse config file: %w", err)
	}
	var errs error
	for _, name := range f.Names() {
		if err := f.Adorners[name].Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("adorn: parse config file: adorner %q: %w", name, err))
		}
	}
	if errs != nil {
		return ConfigFile{}, errs
	}
	return f, nil
}

// LoadConfigFile reads and parses a ConfigFile from disk.
func LoadConfigFile(path string) (ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("adorn: load config file: %w", err)
	}
	return ParseConfigFile(data)
}

// Marshal encodes the config file as YAML.
func (f ConfigFile) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
