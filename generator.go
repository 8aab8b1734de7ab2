package stylegen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/yacobolo/stylegen/internal/styles"
)

// GenerateResult contains statistics from a generation run
type GenerateResult struct {
	ColorsGenerated     int
	TextStylesGenerated int
	DeprecatedStyles    int
	MigratedStyles      int
	FilesScanned        int
	FirstExport         bool // No previous snapshot existed

	Changelog            []styles.UpdatedStyle
	DeprecatedReferences map[string][]string // style name -> referencing files
	OutputFiles          []string
	Diagnostics          []styles.Diagnostic
}

// renderedOutput is one generated file waiting to be written.
type renderedOutput struct {
	path    string
	content string
}

// Generate is the main entry point
func Generate(config Config) (*GenerateResult, error) {
	return GenerateContext(context.Background(), config)
}

// GenerateContext runs one export: load the style document and the previous
// snapshot, merge them, render every configured template, scan the project
// for deprecated references and persist the new snapshot.
func GenerateContext(ctx context.Context, config Config) (*GenerateResult, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := config.Logger
	result := &GenerateResult{}

	// 1. Load the latest styles
	latest, err := loadStyleDocument(config.FS, config.StylesFile, result)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": config.StylesFile, "count": latest.Len()}).Debug("loaded styles")

	// 2. Load the previous export
	previous, diags, err := LoadSnapshot(config.FS, config.SnapshotFile)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = append(result.Diagnostics, diags...)
	if exists, _ := afero.Exists(config.FS, config.SnapshotFile); !exists {
		result.FirstExport = true
	}
	log.WithFields(logrus.Fields{"file": config.SnapshotFile, "count": previous.Len()}).Debug("loaded snapshot")

	// 3. Merge
	exporter := styles.NewStyleExporter(latest, previous)
	final := exporter.NewStyles()
	deprecated := exporter.DeprecatedStyles()
	colorMigrations, textMigrations := exporter.MigrationItems()
	result.Changelog = exporter.Changelog()
	result.ColorsGenerated = len(final.Colors)
	result.TextStylesGenerated = len(final.TextStyles)
	result.DeprecatedStyles = deprecated.Len()
	result.MigratedStyles = len(colorMigrations) + len(textMigrations)

	// 4. Render the style files
	var outputs []renderedOutput
	if config.Templates.Color != "" {
		out, err := renderTemplate(config, config.Templates.Color, config.Outputs.Color, result,
			templateGroup{styles.ColorDeclaration, styles.Group(final.Colors)},
			templateGroup{styles.ColorMigrationDeclaration, styles.Group(colorMigrations)})
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	if config.Templates.Text != "" {
		out, err := renderTemplate(config, config.Templates.Text, config.Outputs.Text, result,
			templateGroup{styles.TextStyleDeclaration, styles.Group(final.TextStyles)},
			templateGroup{styles.TextStyleMigrationDeclaration, styles.Group(textMigrations)})
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	// 5. Find deprecated styles still referenced by the project. Generated
	// files are excluded: they keep every deprecated style on purpose.
	result.DeprecatedReferences = map[string][]string{}
	if len(config.ScanPaths) > 0 && deprecated.Len() > 0 {
		exclude := append(lo.Map(outputs, func(o renderedOutput, _ int) string { return o.path }), config.ScanExclude...)
		scanner := NewScanner(config.FS, exclude, log)
		files, stats, err := scanner.Scan(ctx, config.ScanPaths)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result.FilesScanned = stats.FilesScanned
		result.DeprecatedReferences = exporter.DeprecatedReferences(files)
	}

	// 6. Render the changelog
	if config.Templates.Changelog != "" {
		notes := exporter.DeprecationNotes(result.DeprecatedReferences)
		out, err := renderTemplate(config, config.Templates.Changelog, config.Outputs.Changelog, result,
			templateGroup{styles.UpdatedStyleDeclaration, styles.Group(result.Changelog)},
			templateGroup{styles.ColorMigrationDeclaration, styles.Group(colorMigrations)},
			templateGroup{styles.TextStyleMigrationDeclaration, styles.Group(textMigrations)},
			templateGroup{styles.DeprecationNoteDeclaration, styles.Group(notes)})
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	// 7. Write
	for _, out := range outputs {
		result.OutputFiles = append(result.OutputFiles, out.path)
	}
	if config.DryRun {
		log.Debug("dry run, nothing written")
		return result, nil
	}

	if err := config.FS.MkdirAll(config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	for _, out := range outputs {
		if err := afero.WriteFile(config.FS, out.path, []byte(out.content), 0o644); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		log.WithField("file", out.path).Debug("wrote output")
	}

	if err := SaveSnapshot(config.FS, config.SnapshotFile, final); err != nil {
		return nil, err
	}

	return result, nil
}

func loadStyleDocument(fsys afero.Fs, path string, result *GenerateResult) (styles.StyleSet, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return styles.StyleSet{}, fmt.Errorf("read styles: %w", err)
	}

	set, diags, err := styles.ParseStyleDocument(data, styles.FormatForPath(path))
	if err != nil {
		return styles.StyleSet{}, fmt.Errorf("parse failed: %w", err)
	}
	result.Diagnostics = append(result.Diagnostics, withSource(diags, path)...)
	return set, nil
}

// templateGroup pairs a declaration with the items rendered into it.
type templateGroup struct {
	declaration string
	items       []styles.Replacable
}

// renderTemplate expands templatePath with the non-empty groups. Blocks of
// empty groups are removed so optional sections like rename aliases vanish.
// Unknown declaration blocks stay in the output and surface as diagnostics.
func renderTemplate(config Config, templatePath, outputName string, result *GenerateResult, groups ...templateGroup) (renderedOutput, error) {
	data, err := afero.ReadFile(config.FS, templatePath)
	if err != nil {
		return renderedOutput{}, fmt.Errorf("read template: %w", err)
	}

	gen, err := styles.NewCodeGenerator(string(data))
	if err != nil {
		return renderedOutput{}, fmt.Errorf("template %s: %w", templatePath, err)
	}

	empty, filled := lo.FilterReject(groups, func(g templateGroup, _ int) bool { return len(g.items) == 0 })
	gen = gen.WithoutDeclarations(lo.Map(empty, func(g templateGroup, _ int) string { return g.declaration })...)

	rendered, err := gen.Generate(lo.Map(filled, func(g templateGroup, _ int) []styles.Replacable { return g.items })...)
	if err != nil {
		return renderedOutput{}, fmt.Errorf("template %s: %w", templatePath, err)
	}
	// Diagnostic lines refer to the generated file
	outPath := filepath.Join(config.OutputDir, outputName+"."+rendered.FileExtension)
	result.Diagnostics = append(result.Diagnostics, withSource(rendered.Diagnostics, outPath)...)

	config.Logger.WithFields(logrus.Fields{"file": templatePath, "count": len(filled)}).Debug("rendered template")

	return renderedOutput{path: outPath, content: rendered.Content()}, nil
}

func withSource(diags []styles.Diagnostic, source string) []styles.Diagnostic {
	for i := range diags {
		if diags[i].Source == "" {
			diags[i].Source = source
		}
	}
	return diags
}
