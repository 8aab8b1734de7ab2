package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yacobolo/stylegen"
)

const defaultConfigPath = ".stylegen.yaml"

// Defaults shared by the build functions and `stylegen init`.
const (
	defaultStylesFile        = "design/styles.json"
	defaultSnapshotFile      = "design/.stylegen-snapshot.json"
	defaultOutputDir         = "Generated"
	defaultColorTemplate     = "templates/Colors.swift.tmpl"
	defaultTextTemplate      = "templates/TextStyles.swift.tmpl"
	defaultChangelogTemplate = "templates/CHANGELOG.md.tmpl"
)

var defaultScanPaths = []string{"**/*.swift"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags. Without a koanf instance posflag skips flags the user
	// did not set, so flag defaults never shadow file or env values.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (STYLEGEN_* prefix)
	if err := k.Load(env.Provider("STYLEGEN_", ".", func(s string) string {
		// STYLEGEN_TEMPLATES_COLOR -> templates.color
		// STYLEGEN_CHECK_STRICT -> check.strict
		// STYLEGEN_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STYLEGEN_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig() stylegen.Config {
	return stylegen.Config{
		StylesFile:   getStringWithFallback("styles", "styles", defaultStylesFile),
		SnapshotFile: getStringWithFallback("snapshot", "snapshot", defaultSnapshotFile),
		OutputDir:    getStringWithFallback("output-dir", "output-dir", defaultOutputDir),
		Templates: stylegen.Templates{
			Color:     getOptionalStringWithFallback("color-template", "templates.color", defaultColorTemplate),
			Text:      getOptionalStringWithFallback("text-template", "templates.text", defaultTextTemplate),
			Changelog: getOptionalStringWithFallback("changelog-template", "templates.changelog", defaultChangelogTemplate),
		},
		Outputs: stylegen.Outputs{
			Color:     k.String("outputs.color"),
			Text:      k.String("outputs.text"),
			Changelog: k.String("outputs.changelog"),
		},
		ScanPaths:   getStringsWithFallback("paths", "scan.paths", defaultScanPaths),
		ScanExclude: getStringsWithFallback("exclude", "scan.exclude", nil),
		Verbose:     getBoolWithFallback("verbose", "verbose", false),
		DryRun:      getBoolWithFallback("dry-run", "generate.dry-run", false),
	}
}

// buildCheckConfig constructs the library's CheckConfig struct from koanf state.
func buildCheckConfig() stylegen.CheckConfig {
	return stylegen.CheckConfig{
		SnapshotFile:     getStringWithFallback("snapshot", "snapshot", defaultSnapshotFile),
		ScanPaths:        getStringsWithFallback("paths", "scan.paths", defaultScanPaths),
		ScanExclude:      getStringsWithFallback("exclude", "scan.exclude", nil),
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		Strict:           getBoolWithFallback("strict", "check.strict", false),
		MaxIssues:        getIntWithFallback("max-issues", "check.max-issues", 0),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}
}

// newLogger builds the CLI logger: text to stderr, debug when verbose.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if getBoolWithFallback("verbose", "verbose", false) {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getOptionalStringWithFallback is getStringWithFallback where an empty
// config value is kept, so `templates.text: ""` skips that output.
func getOptionalStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if k.Exists(configKey) {
		return k.String(configKey)
	}
	return defaultVal
}

// getStringsWithFallback is getStringWithFallback for lists.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
