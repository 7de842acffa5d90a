package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/campusgen/internal/activity"
	"github.com/roach88/campusgen/internal/config"
	"github.com/roach88/campusgen/internal/export"
	"github.com/roach88/campusgen/internal/generate"
	"github.com/roach88/campusgen/internal/metrics"
	"github.com/roach88/campusgen/internal/report"
)

const rule = "============================================================"

// GenerateOptions holds flags for the generate-and-export run.
type GenerateOptions struct {
	*RootOptions
	ConfigPath  string
	Count       int
	Seed        uint64
	OutDir      string
	Formats     []string
	Real        bool
	Preview     int
	MetricsFile string

	// Clock overrides the generation and export time (for testing).
	// If nil, defaults to time.Now.
	Clock func() time.Time

	// NewRunID overrides the run ID source (for testing).
	// If nil, defaults to UUIDv7.
	NewRunID func() string

	// Environ replaces the process environment when loading config (for
	// testing). If nil, the process environment is read.
	Environ map[string]string
}

// RunOutput is the JSON payload of a generate-and-export run.
type RunOutput struct {
	RunID       string            `json:"run_id"`
	Seed        uint64            `json:"seed"`
	Real        bool              `json:"real"`
	Export      *export.Result    `json:"export"`
	Fingerprint string            `json:"fingerprint"`
	Summary     report.Summary    `json:"summary"`
	Preview     []activity.Record `json:"preview"`
}

func addGenerateFlags(cmd *cobra.Command, opts *GenerateOptions) {
	def := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	flags.IntVar(&opts.Count, "count", def.Count, "number of records to generate")
	flags.Uint64Var(&opts.Seed, "seed", def.Seed, "random seed")
	flags.StringVar(&opts.OutDir, "out", def.OutDir, "output directory")
	flags.StringSliceVar(&opts.Formats, "formats", []string{"all"}, "export formats (csv,xlsx|excel,json,sqlite,all)")
	flags.BoolVar(&opts.Real, "real", def.Real, "request real data collection (not implemented; falls back to synthetic data)")
	flags.IntVar(&opts.Preview, "preview", def.Preview, "number of records to preview")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
}

// resolveConfig layers explicitly set flags over file and environment.
func resolveConfig(opts *GenerateOptions, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.Environ)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = opts.Count
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if flags.Changed("out") {
		cfg.OutDir = opts.OutDir
	}
	if flags.Changed("formats") {
		cfg.Formats = opts.Formats
	}
	if flags.Changed("real") {
		cfg.Real = opts.Real
	}
	if flags.Changed("preview") {
		cfg.Preview = opts.Preview
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.MetricsFile
	}
	return cfg, nil
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := resolveConfig(opts, cmd)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, "failed to load config", err, nil)
	}
	if err := cfg.Validate(); err != nil {
		var ve *config.ValidationError
		var details any
		if errors.As(err, &ve) {
			details = map[string]string{"field": ve.Field}
		}
		return formatter.fail(ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err, details)
	}
	formats, err := export.ParseFormats(cfg.Formats)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err, nil)
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	runID := newRunID()
	formatter.RunID = runID

	logger := newLogger(cmd.ErrOrStderr(), cfg.Level(), opts.Verbose).With("run_id", runID)
	out := formatter.TextWriter()

	writeBanner(out)
	if cfg.Real {
		logger.Warn("real data collection is not implemented, using synthetic data")
		fmt.Fprintln(out, "Real data collection is not implemented yet.")
		fmt.Fprintln(out, "Falling back to synthetic data.")
	} else {
		fmt.Fprintln(out, "Using synthetic data for the demonstration...")
	}

	gen := generate.New(generate.WithSeed(cfg.Seed), generate.WithClock(clock))
	records, err := gen.Generate(cfg.Count)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidConfig, "failed to generate records", err, nil)
	}
	logger.Info("records generated", "count", len(records), "seed", cfg.Seed)

	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.New()
		recorder.ObserveGenerate(len(records))
	}

	exporter := export.New(cfg.OutDir,
		export.WithFormats(formats...),
		export.WithClock(clock),
		export.WithOutput(out),
		export.WithLogger(logger),
		export.WithRun(runID, cfg.Seed),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	res, exportErr := exporter.Export(ctx, records)
	if recorder != nil {
		recorder.ObserveExport(res, time.Since(start), exportErr != nil)
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", "path", cfg.MetricsFile, "error", err)
			if exportErr == nil {
				return formatter.fail(ExitFailure, ErrCodeWriteFailed, "failed to write metrics", err, nil)
			}
		}
	}
	if exportErr != nil {
		var we *export.WriteError
		var details any
		if errors.As(exportErr, &we) {
			details = map[string]string{"op": we.Op, "path": we.Path}
		}
		logger.Error("export failed", "error", exportErr)
		return formatter.fail(ExitFailure, ErrCodeWriteFailed, "export failed", exportErr, details)
	}

	summary := report.Summarize(records)
	fp, err := activity.Fingerprint(records)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeGeneric, "failed to fingerprint records", err, nil)
	}

	if formatter.IsJSON() {
		return formatter.Success(RunOutput{
			RunID:       runID,
			Seed:        cfg.Seed,
			Real:        cfg.Real,
			Export:      res,
			Fingerprint: fp,
			Summary:     summary,
			Preview:     report.Preview(records, cfg.Preview),
		})
	}

	fmt.Fprintln(out)
	report.WriteSummary(out, summary)
	writeFingerprint(out, fp)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Done.")
	fmt.Fprintf(out, "Data files saved in: %s/\n", strings.TrimRight(cfg.OutDir, "/"))
	fmt.Fprintln(out, rule)
	writeDetails(out, records, summary, cfg.Preview)
	return nil
}

func writeBanner(w io.Writer) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Campus Activity Generator v2.0")
	fmt.Fprintln(w, "Task: collect campus activity data")
	fmt.Fprintln(w, rule)
}

func writeFingerprint(w io.Writer, fp string) {
	fmt.Fprintf(w, "  Fingerprint:        %s\n", fp)
}

// writeDetails prints the preview table, per-type counts and heat
// distribution shared by the run and inspect commands.
func writeDetails(w io.Writer, records []activity.Record, s report.Summary, preview int) {
	if preview > 0 {
		fmt.Fprintf(w, "\nPreview (first %d):\n", min(preview, len(records)))
		report.WritePreview(w, records, preview)
	}
	fmt.Fprintln(w)
	report.WriteTypeCounts(w, s)
	fmt.Fprintln(w)
	report.WriteHeat(w, s)
}
