package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/stylegen"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		// cobra keeps parsed flag values between executions
		_ = initCmd.Flags().Set("force", "false")
		_ = initCmd.Flags().Set("templates", "false")
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".stylegen.yaml")
	configContent := `
styles: design/export.yaml
output-dir: Sources/Generated
verbose: true

templates:
  color: tmpl/colors.tmpl

check:
  strict: true
  max-issues: 25

scan:
  paths:
    - "Sources/**/*.swift"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "design/export.yaml", k.String("styles"))
	assert.Equal(t, "Sources/Generated", k.String("output-dir"))
	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "tmpl/colors.tmpl", k.String("templates.color"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, 25, k.Int("check.max-issues"))
	assert.Equal(t, []string{"Sources/**/*.swift"}, k.Strings("scan.paths"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.stylegen.yaml"))

	config := buildGenerateConfig()
	assert.Equal(t, defaultStylesFile, config.StylesFile)
	assert.Equal(t, defaultSnapshotFile, config.SnapshotFile)
	assert.Equal(t, defaultOutputDir, config.OutputDir)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".stylegen.yaml")
	configContent := `
templates:
  color: from-file
check:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	// Set env vars that should override config file
	t.Setenv("STYLEGEN_TEMPLATES_COLOR", "from-env")
	t.Setenv("STYLEGEN_CHECK_STRICT", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", k.String("templates.color"))
	assert.True(t, k.Bool("check.strict"))
}

func TestBuildGenerateConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildGenerateConfig()
	assert.Equal(t, stylegen.Templates{
		Color:     defaultColorTemplate,
		Text:      defaultTextTemplate,
		Changelog: defaultChangelogTemplate,
	}, config.Templates)
	assert.Equal(t, stylegen.Outputs{}, config.Outputs, "library fills output names")
	assert.Equal(t, defaultScanPaths, config.ScanPaths)
	assert.Empty(t, config.ScanExclude)
	assert.False(t, config.DryRun)
}

func TestBuildCheckConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildCheckConfig()
	assert.Equal(t, defaultSnapshotFile, config.SnapshotFile)
	assert.Equal(t, defaultScanPaths, config.ScanPaths)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
}

func TestBuildGenerateConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".stylegen.yaml")
	configContent := `
styles: export.json
snapshot: snap.json
output-dir: out
templates:
  color: c.tmpl
  text: t.tmpl
  changelog: ""
outputs:
  color: Palette
scan:
  paths:
    - "src/**/*.kt"
  exclude:
    - "build/**"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildGenerateConfig()
	assert.Equal(t, "export.json", config.StylesFile)
	assert.Equal(t, "snap.json", config.SnapshotFile)
	assert.Equal(t, "out", config.OutputDir)
	assert.Equal(t, "c.tmpl", config.Templates.Color)
	assert.Equal(t, "t.tmpl", config.Templates.Text)
	assert.Equal(t, "Palette", config.Outputs.Color)
	assert.Equal(t, []string{"src/**/*.kt"}, config.ScanPaths)
	assert.Equal(t, []string{"build/**"}, config.ScanExclude)
}

func TestBuildCheckConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".stylegen.yaml")
	configContent := `
check:
  strict: true
  max-issues: 10
  print-lines: false
scan:
  paths:
    - "App/**/*.swift"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildCheckConfig()
	assert.True(t, config.Strict)
	assert.Equal(t, 10, config.MaxIssues)
	assert.False(t, config.PrintIssuedLines)
	assert.Equal(t, []string{"App/**/*.swift"}, config.ScanPaths)
}

func useMemInitFS(t *testing.T) afero.Fs {
	t.Helper()
	original := initFS
	initFS = afero.NewMemMapFs()
	t.Cleanup(func() { initFS = original })
	return initFS
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	fsys := useMemInitFS(t)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Equal(t, "Created .stylegen.yaml\n", out)

	data, err := afero.ReadFile(fsys, defaultConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "templates:")
	assert.Contains(t, string(data), "scan:")
	assert.Contains(t, string(data), "check:")

	exists, _ := afero.Exists(fsys, defaultColorTemplate)
	assert.False(t, exists)
}

func TestInitCommand_WritesTemplates(t *testing.T) {
	fsys := useMemInitFS(t)

	_, err := execute(t, "init", "--templates")
	require.NoError(t, err)

	for _, path := range []string{defaultColorTemplate, defaultTextTemplate, defaultChangelogTemplate} {
		data, err := afero.ReadFile(fsys, path)
		require.NoError(t, err, path)
		assert.Contains(t, string(data), "<#@fileExtension=")
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	fsys := useMemInitFS(t)
	require.NoError(t, afero.WriteFile(fsys, defaultConfigPath, []byte("existing"), 0o644))

	_, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	fsys := useMemInitFS(t)
	require.NoError(t, afero.WriteFile(fsys, defaultConfigPath, []byte("existing"), 0o644))

	_, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, defaultConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "output-dir: Generated")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stylegen dev\n", out)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"$schema"`)
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	styles := write("styles.json", `{"styles": [
		{"id": "C1", "name": "Brand", "type": "FILL", "fills": [{"type": "SOLID", "color": {"r": 1, "g": 0, "b": 0, "a": 1}}]}
	]}`)
	tmpl := write("colors.tmpl", "<#@swift#>\n<colorDeclaration>\nlet <#=name#> = \"<#=hex#>\"\n</colorDeclaration>")
	config := write(".stylegen.yaml", "templates:\n  color: "+tmpl+"\n  text: \"\"\n  changelog: \"\"\n")
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "generate",
		"--config", config,
		"--styles", styles,
		"--snapshot", filepath.Join(dir, "snapshot.json"),
		"--output-dir", outDir,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Generated 1 file in "+outDir)
	assert.Contains(t, out, "  Colors: 1\n")
	assert.Contains(t, out, "  First export, no previous snapshot\n")

	data, err := os.ReadFile(filepath.Join(outDir, "Colors.swift"))
	require.NoError(t, err)
	assert.Equal(t, `let brand = "#ff0000"`, string(data))

	_, err = os.Stat(filepath.Join(dir, "snapshot.json"))
	assert.NoError(t, err)
}
