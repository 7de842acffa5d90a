package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// outputModes are the accepted values of --output.
var outputModes = []string{"text", "json"}

// NewRootCommand creates the campusgen command tree. Running it without a
// subcommand generates and exports a dataset.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&GenerateOptions{})
}

func newRootCommand(genOpts *GenerateOptions) *cobra.Command {
	opts := &RootOptions{}
	genOpts.RootOptions = opts

	cmd := &cobra.Command{
		Use:   "campusgen",
		Short: "Synthetic campus activity dataset generator",
		Long: `Generate seeded synthetic campus activity records and export them as
CSV (UTF-8 with BOM), Excel and JSON files sharing one timestamped stem.

With no flags it runs the demonstration: 25 records, seed 42, all three
formats written to data/, followed by summary statistics.

Example:
  campusgen
  campusgen --count 100 --seed 7 --formats csv,sqlite --out ./exports
  campusgen inspect data/campus_activities_20261017_093005.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if slices.Contains(outputModes, opts.Format) {
				return nil
			}
			return NewExitError(ExitCommandError,
				fmt.Sprintf("invalid output %q: must be one of %v", opts.Format, outputModes))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(genOpts, cmd)
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug detail to stderr")
	persistent.StringVar(&opts.Format, "output", "text", "result format on stdout (text|json)")

	addGenerateFlags(cmd, genOpts)
	cmd.AddCommand(NewInspectCommand(opts))
	return cmd
}

// newLogger builds the text logger on stderr used by every command.
// --verbose always wins over the configured level.
func newLogger(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
