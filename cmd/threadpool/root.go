package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tupyy/threadpool/internal/config"
)

const envPrefix = "threadpool"

type app struct {
	v      *viper.Viper
	cfg    *config.Configuration
	logger *zap.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	defaults, err := config.NewConfigurationWithDefaults()
	if err != nil {
		// default tags are static, this only fails on a programming error
		panic(err)
	}

	var configFile string
	cmd := &cobra.Command{
		Use:          "threadpool",
		Short:        "Run work on a fixed-size worker pool sized from the host CPU topology",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, configFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a yaml configuration file")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	flags.String("log-format", defaults.LogFormat, "Log format: console or json")
	flags.String("cpuinfo-path", defaults.Probe.CPUInfoPath, "Path of the cpu information file")
	flags.Uint("probe-max-tries", defaults.Probe.MaxTries, "Attempts on transient cpu info read errors")
	flags.Int("fallback-size", defaults.Pool.FallbackSize, "Pool size used when the core count cannot be probed")

	a.bind(flags, map[string]string{
		"log-level":          "log-level",
		"log-format":         "log-format",
		"probe.cpuinfo-path": "cpuinfo-path",
		"probe.max-tries":    "probe-max-tries",
		"pool.fallback-size": "fallback-size",
	})

	cmd.AddCommand(
		newRunCommand(a, defaults),
		newCoresCommand(a),
		newConfigCommand(a),
	)

	return cmd
}

// bind maps configuration keys to flags of fs.
func (a *app) bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := a.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %q: %v", flag, err))
		}
	}
}

func (a *app) init(cmd *cobra.Command, configFile string) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if configFile != "" {
		a.v.SetConfigFile(configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	zap.ReplaceGlobals(logger)

	zap.S().Named("cli").Debugw("configuration loaded", "command", cmd.Name(), "config", cfg)
	return nil
}

func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	switch format {
	case config.LogFormatJSON:
		zcfg = zap.NewProductionConfig()
	default:
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = lvl

	return zcfg.Build()
}
