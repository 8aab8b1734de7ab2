package stylegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			StylesFile:   "styles.json",
			SnapshotFile: "snapshot.json",
			OutputDir:    "out",
			Templates:    Templates{Text: "text.tmpl"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing styles file", func(c *Config) { c.StylesFile = "" }, "StylesFile: cannot be blank"},
		{"missing snapshot", func(c *Config) { c.SnapshotFile = "" }, "SnapshotFile: cannot be blank"},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }, "OutputDir: cannot be blank"},
		{"no templates", func(c *Config) { c.Templates = Templates{} }, "at least one of color, text or changelog must be set"},
		{"nested output name", func(c *Config) { c.Outputs.Text = "gen/Text" }, "must be a file name without directories"},
		{"windows output name", func(c *Config) { c.Outputs.Changelog = `gen\CHANGELOG` }, "must be a file name without directories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	config := Config{Outputs: Outputs{Color: "Palette"}}.withDefaults()

	assert.Equal(t, Outputs{Color: "Palette", Text: DefaultTextOutput, Changelog: DefaultChangelogOutput}, config.Outputs)
	assert.NotNil(t, config.Logger)
	assert.NotNil(t, config.FS)
}

func TestCheckConfigWithDefaults(t *testing.T) {
	config := CheckConfig{}.withDefaults()
	assert.NotNil(t, config.Logger)
	assert.NotNil(t, config.FS)
}
