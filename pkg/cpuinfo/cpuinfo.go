package cpuinfo

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/tupyy/threadpool/pkg/errors"
)

const (
	DefaultPath = "/proc/cpuinfo"

	keyPhysicalID = "physical id"
	keyCoreID     = "core id"
)

type core struct {
	physicalID uint32
	coreID     uint32
}

// block accumulates the keys of one processor entry.
type block struct {
	physicalID *uint32
	coreID     *uint32
}

func (b *block) flush(cores map[core]struct{}) {
	if b.physicalID != nil && b.coreID != nil {
		cores[core{physicalID: *b.physicalID, coreID: *b.coreID}] = struct{}{}
	}
	*b = block{}
}

// PhysicalCores counts the distinct (physical id, core id) pairs found in r.
// r holds "key: value" lines, one processor per block, blocks separated by
// blank lines. Blocks missing either key are ignored, so hosts that do not
// report a topology yield 0.
func PhysicalCores(r io.Reader) (int, error) {
	cores := make(map[core]struct{})
	var current block

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			current.flush(cores)
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case keyPhysicalID:
			if id, ok := parseID(value); ok {
				current.physicalID = &id
			}
		case keyCoreID:
			if id, ok := parseID(value); ok {
				current.coreID = &id
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	current.flush(cores)

	return len(cores), nil
}

func parseID(s string) (uint32, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

type options struct {
	maxTries uint
	interval time.Duration
}

type Option func(*options)

// WithMaxTries sets how many times a transient read failure is attempted.
func WithMaxTries(n uint) Option {
	return func(o *options) {
		o.maxTries = n
	}
}

// WithInitialInterval sets the first backoff interval between attempts.
func WithInitialInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// ReadPhysicalCores reads the cpu information file at path and returns the
// number of physical cores. Transient read errors are retried with exponential
// backoff; a missing or unreadable file fails right away.
// All errors are *errors.ProbeError.
func ReadPhysicalCores(ctx context.Context, path string, opts ...Option) (int, error) {
	o := options{maxTries: 3, interval: 50 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.interval

	n, err := backoff.Retry(ctx, func() (int, error) {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				return 0, backoff.Permanent(err)
			}
			return 0, err
		}
		defer f.Close()

		return PhysicalCores(f)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(o.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			zap.S().Named("cpuinfo").Warnw("failed to read cpu info, retrying", "path", path, "error", err, "next", next)
		}),
	)
	if err != nil {
		return 0, srvErrors.NewProbeError(path, err)
	}

	zap.S().Named("cpuinfo").Debugw("physical cores detected", "path", path, "cores", n)
	return n, nil
}
