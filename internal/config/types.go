package config

import (
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Refresh rate limits.
const (
	DefaultFPS = 6
	MinFPS     = 1
	MaxFPS     = 60
)

// Config represents the complete .hibou.yaml configuration file.
type Config struct {
	Version     int              `yaml:"version" mapstructure:"version"`
	Refresh     RefreshConfig    `yaml:"refresh" mapstructure:"refresh"`
	Sources     SourcesConfig    `yaml:"sources" mapstructure:"sources"`
	Filesystems []string         `yaml:"filesystems" mapstructure:"filesystems"`
	Network     NetworkConfig    `yaml:"network" mapstructure:"network"`
	Thresholds  ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Output      OutputConfig     `yaml:"output" mapstructure:"output"`
	Debug       bool             `yaml:"debug" mapstructure:"debug"`
	LogFile     string           `yaml:"log_file" mapstructure:"log_file"`
}

// RefreshConfig controls how often the dashboard samples.
type RefreshConfig struct {
	// FPS is the number of ticks per second.
	FPS int `yaml:"fps" mapstructure:"fps"`
}

// SourcesConfig locates the counter sources. Tests and containers point
// these at copies of the kernel files.
type SourcesConfig struct {
	Present string `yaml:"present" mapstructure:"present"`
	Stat    string `yaml:"stat" mapstructure:"stat"`
	Meminfo string `yaml:"meminfo" mapstructure:"meminfo"`
	NetDev  string `yaml:"netdev" mapstructure:"netdev"`
}

// NetworkConfig selects which interfaces count toward traffic.
type NetworkConfig struct {
	// ExcludeLoopback drops "lo" from the traffic sum.
	ExcludeLoopback bool `yaml:"exclude_loopback" mapstructure:"exclude_loopback"`

	// Exclude lists further interface names to ignore.
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

// ThresholdsConfig sets the usage percentages at which bars change colour.
type ThresholdsConfig struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Plain forces the text table instead of the full-screen dashboard.
	Plain bool `yaml:"plain" mapstructure:"plain"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Refresh: RefreshConfig{FPS: DefaultFPS},
		Sources: SourcesConfig{
			Present: counters.DefaultPresentPath,
			Stat:    counters.DefaultStatPath,
			Meminfo: counters.DefaultMeminfoPath,
			NetDev:  counters.DefaultNetDevPath,
		},
		Filesystems: []string{"/"},
		Network: NetworkConfig{
			Exclude: []string{},
		},
		Thresholds: ThresholdsConfig{
			Warning:  70,
			Critical: 90,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Period returns the time between ticks. A non-positive FPS falls back to
// DefaultFPS.
func (c *Config) Period() time.Duration {
	fps := c.Refresh.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Paths converts the sources section for a counters.FileReader.
func (c *Config) Paths() counters.Paths {
	return counters.Paths{
		Present: c.Sources.Present,
		Stat:    c.Sources.Stat,
		Meminfo: c.Sources.Meminfo,
		NetDev:  c.Sources.NetDev,
	}
}

// InterfaceFilter builds the traffic filter described by the network section.
func (c *Config) InterfaceFilter() counters.InterfaceFilter {
	return counters.ExcludeInterfaces(c.Network.Exclude, c.Network.ExcludeLoopback)
}
