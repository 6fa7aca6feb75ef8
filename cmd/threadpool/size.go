package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/tupyy/threadpool/internal/config"
	"github.com/tupyy/threadpool/pkg/cpuinfo"
)

type sizeSource string

const (
	sizeFromConfig   sizeSource = "config"
	sizeFromProbe    sizeSource = "probe"
	sizeFromFallback sizeSource = "fallback"
)

// resolvePoolSize picks the pool size: the configured worker count if set,
// otherwise the number of physical cores, otherwise the fallback size.
func resolvePoolSize(ctx context.Context, cfg *config.Configuration) (int, sizeSource) {
	if cfg.Pool.Workers > 0 {
		return cfg.Pool.Workers, sizeFromConfig
	}

	n, err := cpuinfo.ReadPhysicalCores(ctx, cfg.Probe.CPUInfoPath, cpuinfo.WithMaxTries(cfg.Probe.MaxTries))
	if err != nil {
		zap.S().Named("cli").Warnw("failed to probe physical cores, using fallback size", "error", err, "fallback", cfg.Pool.FallbackSize)
		return cfg.Pool.FallbackSize, sizeFromFallback
	}
	if n == 0 {
		zap.S().Named("cli").Warnw("no cpu topology reported, using fallback size", "path", cfg.Probe.CPUInfoPath, "fallback", cfg.Pool.FallbackSize)
		return cfg.Pool.FallbackSize, sizeFromFallback
	}

	return n, sizeFromProbe
}

// withoutConfiguredWorkers returns a copy of cfg that forces the probe to run.
func withoutConfiguredWorkers(cfg *config.Configuration) *config.Configuration {
	c := *cfg
	c.Pool.Workers = 0
	return &c
}
