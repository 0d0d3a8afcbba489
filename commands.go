package main

import (
	"context"
	"os"

	"statlab/internal/analysis"
	"statlab/internal/store"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	outputDir string
	noChart   bool
	store     bool
	jobs      int
	logLevel  string
	analysis  analysis.Options
	redisURL  string
	queue     string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCommand() *cobra.Command {
	opts := &options{analysis: analysis.DefaultOptions()}

	cmd := &cobra.Command{
		Use:           "statlab",
		Short:         "Descriptive statistics, regression and frequency reports for small datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.outputDir, "output-dir", os.Getenv("STATLAB_OUTPUT_DIR"), "Directory for reports and charts (default: next to each input)")
	flags.BoolVar(&opts.noChart, "no-chart", false, "Skip chart rendering")
	flags.BoolVar(&opts.store, "store", false, "Persist runs to PostgreSQL (POSTGRES_* or DATABASE_URL)")
	flags.StringVar(&opts.logLevel, "log-level", envOr("STATLAB_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAnalysisCommand(opts, analysis.KindFrequency, "Frequency table, mode, median and dispersion with a histogram"),
		newAnalysisCommand(opts, analysis.KindDescriptive, "Quartiles, mean, linear rescaling, stem-and-leaf and box plots"),
		newAnalysisCommand(opts, analysis.KindRegression, "Bivariate linear regression with a scatter plot"),
		newServiceCommand(opts),
	)
	return cmd
}

func newAnalysisCommand(opts *options, kind analysis.Kind, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind) + " FILE [FILE...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := newRunner(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cleanup()
			return r.runAll(cmd.Context(), kind, args, opts.jobs)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.jobs, "jobs", "j", 4, "Number of files analysed in parallel")
	if kind == analysis.KindDescriptive {
		flags.Float64Var(&opts.analysis.TargetMean, "target-mean", opts.analysis.TargetMean, "Mean of the rescaled sample")
		flags.Float64Var(&opts.analysis.FixedValue, "fixed-value", opts.analysis.FixedValue, "Value left unchanged by the rescaling")
	}
	return cmd
}

func newServiceCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Run as a background worker consuming analysis jobs from a Redis queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := newRunner(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cleanup()
			return runService(cmd.Context(), r, opts.redisURL, opts.queue)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.redisURL, "redis-url", envOr("REDIS_URL", "redis://localhost:6379/0"), "Redis server holding the job queue")
	flags.StringVar(&opts.queue, "queue", envOr("WORKER_QUEUE", "default"), "Queue name, read from the list queue:<name>")
	return cmd
}

func newRunner(ctx context.Context, opts *options) (*runner, func(), error) {
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "create output directory")
		}
	}
	r := &runner{
		outputDir: opts.outputDir,
		noChart:   opts.noChart,
		options:   opts.analysis,
	}
	if !opts.store {
		return r, func() {}, nil
	}

	dsn, err := store.DSNFromEnv()
	if err != nil {
		return nil, nil, errors.Wrap(err, "database config error")
	}
	s, err := store.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		s.Close()
		return nil, nil, err
	}
	r.store = s
	return r, func() { s.Close() }, nil
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
