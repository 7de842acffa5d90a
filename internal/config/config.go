// Package config resolves the parameters of one generate-and-export run.
//
// Values are layered in increasing precedence: Default, an optional YAML
// file, CAMPUSGEN_* environment variables, and finally whatever command-line
// flags the caller applies on top. Validate checks the result against the
// embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource []byte

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CAMPUSGEN_"

// Config holds the run parameters.
type Config struct {
	Count       int      `yaml:"count" json:"count" env:"COUNT"`
	Seed        uint64   `yaml:"seed" json:"seed" env:"SEED"`
	OutDir      string   `yaml:"out_dir" json:"out_dir" env:"OUT_DIR"`
	Formats     []string `yaml:"formats" json:"formats" env:"FORMATS" envSeparator:","`
	Real        bool     `yaml:"real" json:"real" env:"REAL"`
	Preview     int      `yaml:"preview" json:"preview" env:"PREVIEW"`
	MetricsFile string   `yaml:"metrics_file" json:"metrics_file" env:"METRICS_FILE"`
	LogLevel    string   `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
}

// Default returns the parameters of the demonstration run.
func Default() Config {
	return Config{
		Count:    25,
		Seed:     42,
		OutDir:   "data",
		Formats:  []string{"csv", "xlsx", "json"},
		Preview:  5,
		LogLevel: "info",
	}
}

// Load layers the YAML file at path (skipped when path is empty) and the
// environment over Default. A nil environ reads the process environment.
// The result is not validated.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Reject unknown keys so a misspelt option is not silently ignored.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ValidationError reports the first schema violation.
type ValidationError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks cfg against the embedded schema and returns a
// *ValidationError naming the offending field.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	// A nil list encodes as null, which the schema rejects.
	if c.Formats == nil {
		c.Formats = []string{}
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return toValidationError(err)
	}
	return nil
}

// toValidationError keeps the first CUE error with its field path and
// schema position.
func toValidationError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := errs[0]
	var path []string
	for _, sel := range first.Path() {
		if strings.HasPrefix(sel, "#") {
			continue
		}
		path = append(path, sel)
	}

	format, args := first.Msg()
	ve := &ValidationError{
		Field:   strings.Join(path, "."),
		Message: fmt.Sprintf(format, args...),
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		ve.Pos = positions[0]
	}
	return ve
}

// Level maps LogLevel to a slog level. Unknown names map to Info; Validate
// rejects them first.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
