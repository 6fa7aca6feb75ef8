// Package config defines the configuration structure for the threadpool CLI.
//
// Configuration is organized into logical sections (Pool, Probe, Demo) and
// is loaded through viper from, in increasing priority, the struct defaults,
// a yaml config file, THREADPOOL_* environment variables and command-line flags.
//
// # Configuration Structure
//
//	Configuration
//	├── Pool        - Worker pool sizing
//	├── Probe       - CPU topology probe
//	├── Demo        - Jobs submitted by the run command
//	├── LogFormat   - Logging format
//	└── LogLevel    - Logging verbosity
//
// # Pool Configuration
//
//	┌──────────────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field            │ Default │ Description                                  │
//	├──────────────────┼─────────┼──────────────────────────────────────────────┤
//	│ Workers          │ 0       │ Pool size, 0 means one per physical core     │
//	│ FallbackSize     │ 4       │ Pool size used when the probe gives nothing  │
//	│ LockOSThread     │ false   │ Pin each worker to its own OS thread         │
//	└──────────────────┴─────────┴──────────────────────────────────────────────┘
//
// # Probe Configuration
//
//	┌──────────────────┬─────────────────┬──────────────────────────────────────┐
//	│ Field            │ Default         │ Description                          │
//	├──────────────────┼─────────────────┼──────────────────────────────────────┤
//	│ CPUInfoPath      │ "/proc/cpuinfo" │ CPU information source               │
//	│ MaxTries         │ 3               │ Attempts on transient read errors    │
//	└──────────────────┴─────────────────┴──────────────────────────────────────┘
//
// # Demo Configuration
//
//	┌──────────────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field            │ Default │ Description                                  │
//	├──────────────────┼─────────┼──────────────────────────────────────────────┤
//	│ Jobs             │ 100     │ Number of jobs submitted by "run"            │
//	│ JobDuration      │ "10ms"  │ Time each demo job sleeps                    │
//	└──────────────────┴─────────┴──────────────────────────────────────────────┘
//
// # Defaults
//
// Defaults live in `default` struct tags and are applied with
// github.com/creasty/defaults:
//
//	cfg, err := config.NewConfigurationWithDefaults()
//
// # Loading
//
//	v := viper.New()
//	v.SetEnvPrefix("threadpool")
//	v.AutomaticEnv()
//	_ = v.BindPFlags(cmd.Flags())
//
//	cfg, err := config.Load(v)
//
// Load returns a ConfigurationError naming the offending field when
// validation fails.
package config
