package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"

	srvErrors "github.com/tupyy/threadpool/pkg/errors"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type Configuration struct {
	Pool      Pool   `mapstructure:"pool" yaml:"pool"`
	Probe     Probe  `mapstructure:"probe" yaml:"probe"`
	Demo      Demo   `mapstructure:"demo" yaml:"demo"`
	LogFormat string `mapstructure:"log-format" yaml:"log-format" default:"console"`
	LogLevel  string `mapstructure:"log-level" yaml:"log-level" default:"info"`
}

type Pool struct {
	// Workers is the pool size. 0 means one worker per physical core.
	Workers      int  `mapstructure:"workers" yaml:"workers" default:"0"`
	FallbackSize int  `mapstructure:"fallback-size" yaml:"fallback-size" default:"4"`
	LockOSThread bool `mapstructure:"lock-os-thread" yaml:"lock-os-thread" default:"false"`
}

type Probe struct {
	CPUInfoPath string `mapstructure:"cpuinfo-path" yaml:"cpuinfo-path" default:"/proc/cpuinfo"`
	MaxTries    uint   `mapstructure:"max-tries" yaml:"max-tries" default:"3"`
}

type Demo struct {
	Jobs        int    `mapstructure:"jobs" yaml:"jobs" default:"100"`
	JobDuration string `mapstructure:"job-duration" yaml:"job-duration" default:"10ms"`
}

// NewConfigurationWithDefaults returns a configuration with every default applied.
func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set configuration defaults: %w", err)
	}
	return cfg, nil
}

// Load decodes v on top of the defaults and validates the result.
func Load(v *viper.Viper) (*Configuration, error) {
	cfg, err := NewConfigurationWithDefaults()
	if err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JobDurationValue returns the parsed demo job duration. Validate guarantees it parses.
func (c *Configuration) JobDurationValue() time.Duration {
	d, _ := time.ParseDuration(c.Demo.JobDuration)
	return d
}

func (c *Configuration) Validate() error {
	if c.Pool.Workers < 0 {
		return srvErrors.NewConfigurationError("pool.workers", "must not be negative")
	}
	if c.Pool.FallbackSize < 1 {
		return srvErrors.NewConfigurationError("pool.fallback-size", "must be at least 1")
	}
	if c.Probe.CPUInfoPath == "" {
		return srvErrors.NewConfigurationError("probe.cpuinfo-path", "must not be empty")
	}
	if c.Probe.MaxTries < 1 {
		return srvErrors.NewConfigurationError("probe.max-tries", "must be at least 1")
	}
	if c.Demo.Jobs < 0 {
		return srvErrors.NewConfigurationError("demo.jobs", "must not be negative")
	}
	if _, err := time.ParseDuration(c.Demo.JobDuration); err != nil {
		return srvErrors.NewConfigurationError("demo.job-duration", err.Error())
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return srvErrors.NewConfigurationError("log-format", fmt.Sprintf("%q is not one of console, json", c.LogFormat))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return srvErrors.NewConfigurationError("log-level", fmt.Sprintf("%q is not one of %v", c.LogLevel, logLevels))
	}
	return nil
}
