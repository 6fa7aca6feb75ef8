package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tupyy/threadpool/internal/config"
	"github.com/tupyy/threadpool/pkg/threadpool"
)

type runReport struct {
	Workers   int
	Source    sizeSource
	Submitted int64
	Completed int64
	Elapsed   time.Duration
}

func newRunCommand(a *app, defaults *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit demo jobs to a worker pool and wait for them to finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runDemo(cmd, a.cfg)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "workers:   %d (%s)\n", report.Workers, report.Source)
			fmt.Fprintf(out, "submitted: %d\n", report.Submitted)
			fmt.Fprintf(out, "completed: %d\n", report.Completed)
			fmt.Fprintf(out, "elapsed:   %s\n", report.Elapsed.Round(time.Millisecond))
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(out, "pool stopped with errors: %v\n", err)
				return err
			}
			color.New(color.FgGreen).Fprintln(out, "pool stopped cleanly")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("workers", defaults.Pool.Workers, "Number of workers, 0 to use one per physical core")
	flags.Bool("lock-os-thread", defaults.Pool.LockOSThread, "Pin each worker to its own OS thread")
	flags.Int("jobs", defaults.Demo.Jobs, "Number of demo jobs to submit")
	flags.String("job-duration", defaults.Demo.JobDuration, "Time each demo job sleeps")

	a.bind(flags, map[string]string{
		"pool.workers":        "workers",
		"pool.lock-os-thread": "lock-os-thread",
		"demo.jobs":           "jobs",
		"demo.job-duration":   "job-duration",
	})

	return cmd
}

// runDemo submits the configured number of jobs and shuts the pool down.
// Submission stops early when the command context is cancelled; jobs already
// queued still run.
func runDemo(cmd *cobra.Command, cfg *config.Configuration) (runReport, error) {
	ctx := cmd.Context()
	log := zap.S().Named("run")

	workers, source := resolvePoolSize(ctx, cfg)
	report := runReport{Workers: workers, Source: source}

	var opts []threadpool.Option
	if cfg.Pool.LockOSThread {
		opts = append(opts, threadpool.WithLockOSThread())
	}

	var completed atomic.Int64
	jobDuration := cfg.JobDurationValue()
	start := time.Now()

	err := threadpool.With(workers, func(p *threadpool.ThreadPool) error {
		for i := range cfg.Demo.Jobs {
			if ctx.Err() != nil {
				log.Warnw("interrupted, stop submitting jobs", "submitted", report.Submitted)
				return nil
			}

			id := uuid.New()
			err := p.Execute(func() {
				time.Sleep(jobDuration)
				completed.Add(1)
				log.Debugw("job done", "job", id, "index", i)
			})
			if err != nil {
				return fmt.Errorf("failed to submit job %s: %w", id, err)
			}
			report.Submitted++
		}
		log.Infow("all jobs submitted", "jobs", report.Submitted, "workers", p.Size())
		return nil
	}, opts...)

	report.Completed = completed.Load()
	report.Elapsed = time.Since(start)
	return report, err
}
