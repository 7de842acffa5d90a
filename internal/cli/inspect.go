package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/campusgen/internal/activity"
	"github.com/roach88/campusgen/internal/export"
	"github.com/roach88/campusgen/internal/report"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Preview int
}

// InspectOutput is the JSON payload of the inspect command.
type InspectOutput struct {
	Path        string            `json:"path"`
	Fingerprint string            `json:"fingerprint"`
	Summary     report.Summary    `json:"summary"`
	Preview     []activity.Record `json:"preview"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a previously exported file",
		Long: `Read a csv, xlsx, json or db export back, validate every record and
print the same statistics the generating run printed.

Example:
  campusgen inspect data/campus_activities_20261017_093005.csv
  campusgen inspect --output json data/campus_activities_20261017_093005.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Preview, "preview", 5, "number of records to preview")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	newLogger(cmd.ErrOrStderr(), slog.LevelInfo, opts.Verbose)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter.VerboseLog("Reading %s", path)
	records, err := export.ReadFile(ctx, path)
	if err != nil {
		code := ErrCodeInvalidData
		switch {
		case errors.Is(err, os.ErrNotExist):
			code = ErrCodeNotFound
		case errors.Is(err, export.ErrUnsupportedFile):
			code = ErrCodeUnsupportedFile
		}
		return formatter.fail(ExitCommandError, code, "failed to read export", err, map[string]string{"path": path})
	}
	formatter.VerboseLog("Read %d record(s)", len(records))

	summary := report.Summarize(records)
	fp, err := activity.Fingerprint(records)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeGeneric, "failed to fingerprint records", err, nil)
	}

	if formatter.IsJSON() {
		return formatter.Success(InspectOutput{
			Path:        path,
			Fingerprint: fp,
			Summary:     summary,
			Preview:     report.Preview(records, opts.Preview),
		})
	}

	out := formatter.Writer
	fmt.Fprintf(out, "File: %s\n", path)
	report.WriteSummary(out, summary)
	writeFingerprint(out, fp)
	writeDetails(out, records, summary, opts.Preview)
	return nil
}
