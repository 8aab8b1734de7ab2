package stylegen

import (
	"errors"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Default output base names, without extension. The extension comes from
// each template's <#@fileExtension=...#> line.
const (
	DefaultColorOutput     = "Colors"
	DefaultTextOutput      = "TextStyles"
	DefaultChangelogOutput = "CHANGELOG"
)

// Templates holds the template file paths. An empty path skips that output.
type Templates struct {
	Color     string
	Text      string
	Changelog string
}

// Outputs holds the generated file base names.
type Outputs struct {
	Color     string
	Text      string
	Changelog string
}

// Config holds generation configuration
type Config struct {
	StylesFile   string // Exported style document (.json, .yaml)
	SnapshotFile string // Previously exported styles, rewritten on success
	OutputDir    string
	Templates    Templates
	Outputs      Outputs

	ScanPaths   []string // Project files searched for deprecated style references
	ScanExclude []string // Glob patterns removed from ScanPaths matches

	Verbose bool
	DryRun  bool // Render and report without writing files

	Logger logrus.FieldLogger // Defaults to a discarding logger
	FS     afero.Fs           // Defaults to the OS file system
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.StylesFile, validation.Required),
		validation.Field(&c.SnapshotFile, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Templates),
		validation.Field(&c.Outputs),
	)
}

// Validate requires at least one template.
func (t Templates) Validate() error {
	if t.Color == "" && t.Text == "" && t.Changelog == "" {
		return errors.New("at least one of color, text or changelog must be set")
	}
	return nil
}

// Validate rejects output names that would escape the output directory.
func (o Outputs) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Color, validation.By(baseName)),
		validation.Field(&o.Text, validation.By(baseName)),
		validation.Field(&o.Changelog, validation.By(baseName)),
	)
}

func baseName(value interface{}) error {
	name, _ := value.(string)
	for _, r := range name {
		if r == '/' || r == '\\' {
			return errors.New("must be a file name without directories")
		}
	}
	return nil
}

// withDefaults fills unset optional fields.
func (c Config) withDefaults() Config {
	if c.Outputs.Color == "" {
		c.Outputs.Color = DefaultColorOutput
	}
	if c.Outputs.Text == "" {
		c.Outputs.Text = DefaultTextOutput
	}
	if c.Outputs.Changelog == "" {
		c.Outputs.Changelog = DefaultChangelogOutput
	}
	c.Logger = loggerOrDiscard(c.Logger)
	if c.FS == nil {
		c.FS = afero.NewOsFs()
	}
	return c
}

// CheckConfig holds reference checking configuration
type CheckConfig struct {
	SnapshotFile string   // Snapshot written by Generate
	ScanPaths    []string // Patterns to scan (e.g., "Sources/**/*.swift")
	ScanExclude  []string
	Verbose      bool
	Strict       bool // Report issues as errors; the CLI exits with code 1

	MaxIssues        int  // 0 = unlimited (default)
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (stylecheck) suffix
	UseColors        bool // Enable color output (default: auto-detect)

	Logger logrus.FieldLogger
	FS     afero.Fs
}

// Validate checks the required settings.
func (c *CheckConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SnapshotFile, validation.Required),
		validation.Field(&c.ScanPaths, validation.Required),
		validation.Field(&c.MaxIssues, validation.Min(0)),
	)
}

func (c CheckConfig) withDefaults() CheckConfig {
	c.Logger = loggerOrDiscard(c.Logger)
	if c.FS == nil {
		c.FS = afero.NewOsFs()
	}
	return c
}

func loggerOrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
