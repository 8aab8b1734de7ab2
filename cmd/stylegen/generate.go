package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yacobolo/stylegen"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate code from the exported design styles",
	Long: `Merge the exported styles with the previous export, render the color,
text style and changelog templates, then save the new snapshot.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("styles", "", "Exported style document (.json, .yaml)")
	f.String("output-dir", "", "Output directory for generated files")
	f.String("color-template", "", "Template for the color file")
	f.String("text-template", "", "Template for the text style file")
	f.String("changelog-template", "", "Template for the changelog")
	f.Bool("dry-run", false, "Render and report without writing files")
	f.Bool("watch", false, "Regenerate whenever the styles or a template change")
	f.Bool("check", false, "Check deprecated style references after generation")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if getBoolWithFallback("color", "color", false) {
		color.NoColor = false
	}

	log := newLogger()
	config := buildGenerateConfig()
	config.Logger = log
	w := cmd.OutOrStdout()

	if !getBoolWithFallback("watch", "generate.watch", false) {
		return generateOnce(w, config, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watchAndGenerate(ctx, config, log, func() {
		// Keep watching after a failed run; the next save may fix it
		if err := generateOnce(w, config, log); err != nil && !errors.Is(err, errIssuesFound) {
			log.WithError(err).Error("generation failed")
		}
	})
}

func generateOnce(w io.Writer, config stylegen.Config, log logrus.FieldLogger) error {
	result, err := stylegen.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	for _, d := range result.Diagnostics {
		log.WithField("kind", d.Kind).Warn(d.String())
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		printGenerateSummary(w, config, result)
	}

	if getBoolWithFallback("check", "generate.check", false) {
		return runCheck(w)
	}
	return nil
}

// printGenerateSummary reports what one run produced.
func printGenerateSummary(w io.Writer, config stylegen.Config, result *stylegen.GenerateResult) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)

	verb := "Generated"
	if config.DryRun {
		verb = "Would generate"
	}
	green.Fprintf(w, "✓ %s %s in %s\n", verb, pluralize(len(result.OutputFiles), "file", "files"), config.OutputDir)
	for _, path := range result.OutputFiles {
		fmt.Fprintf(w, "  %s\n", path)
	}

	fmt.Fprintf(w, "  Colors: %d\n", result.ColorsGenerated)
	fmt.Fprintf(w, "  Text styles: %d\n", result.TextStylesGenerated)
	if result.FirstExport {
		cyan.Fprintln(w, "  First export, no previous snapshot")
	}
	if len(result.Changelog) > 0 {
		fmt.Fprintf(w, "  Updated: %d\n", len(result.Changelog))
	}
	if result.MigratedStyles > 0 {
		fmt.Fprintf(w, "  Renamed: %d\n", result.MigratedStyles)
	}
	if result.DeprecatedStyles > 0 {
		fmt.Fprintf(w, "  Deprecated: %d\n", result.DeprecatedStyles)
	}

	names := make([]string, 0, len(result.DeprecatedReferences))
	for name := range result.DeprecatedReferences {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		yellow.Fprintf(w, "  ⚠ %s is still used in %s\n", name, strings.Join(result.DeprecatedReferences[name], ", "))
	}
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
