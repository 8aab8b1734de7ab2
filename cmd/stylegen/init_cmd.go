package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// initFS is replaced in tests.
var initFS = afero.NewOsFs()

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .stylegen.yaml config file",
	Long: `Create a .stylegen.yaml configuration file in the current directory with
sensible defaults. With --templates, sample Swift and changelog templates are
written too.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		withTemplates, _ := cmd.Flags().GetBool("templates")

		files := map[string]string{defaultConfigPath: defaultConfig}
		if withTemplates {
			files[defaultColorTemplate] = sampleColorTemplate
			files[defaultTextTemplate] = sampleTextTemplate
			files[defaultChangelogTemplate] = sampleChangelogTemplate
		}

		for _, path := range []string{defaultConfigPath, defaultColorTemplate, defaultTextTemplate, defaultChangelogTemplate} {
			content, ok := files[path]
			if !ok {
				continue
			}
			if exists, _ := afero.Exists(initFS, path); exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := initFS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", path, err)
			}
			if err := afero.WriteFile(initFS, path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().Bool("templates", false, "Also write sample templates")
}

const defaultConfig = `# stylegen configuration

# Shared settings
styles: design/styles.json                # export from the design tool (.json or .yaml)
snapshot: design/.stylegen-snapshot.json  # previous export, commit it
output-dir: Generated
verbose: false

# Templates; remove an entry to skip that file
templates:
  color: templates/Colors.swift.tmpl
  text: templates/TextStyles.swift.tmpl
  changelog: templates/CHANGELOG.md.tmpl

# Generated file names, the extension comes from each template
outputs:
  color: Colors
  text: TextStyles
  changelog: CHANGELOG

# Project files searched for deprecated style references
scan:
  paths:
    - "**/*.swift"
  exclude:
    - "Pods/**"
    - ".build/**"

# Reference checking
check:
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues: 0            # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

const sampleColorTemplate = `<#@fileExtension=swift#>
<headerDeclaration>
// <#=headerLine#>
</headerDeclaration>

import SwiftUI

public extension Color {
<colorDeclaration>
    /// <#=styleName#> (<#=hex#>)
    <#?isDeprecated=true#>@available(*, deprecated, message: "Removed from the design system")
    static let <#=name#> = Color(red: <#=red#> / 255, green: <#=green#> / 255, blue: <#=blue#> / 255, opacity: <#=alpha#>)
</colorDeclaration>
<colorMigrationDeclaration>
    @available(*, deprecated, renamed: "<#=newName#>")
    static var <#=oldName#>: Color { <#=newName#> }
</colorMigrationDeclaration>
}
`

const sampleTextTemplate = `<#@fileExtension=swift#>
<headerDeclaration>
// <#=headerLine#>
</headerDeclaration>

import SwiftUI

public struct TextStyle {
    public let fontName: String
    public let fontSize: CGFloat
    public let kerning: CGFloat
    public let lineHeight: CGFloat
    public let color: Color
}

public extension TextStyle {
<textStyleDeclaration>
    <#?isDeprecated=true#>@available(*, deprecated, message: "Removed from the design system")
    static let <#=name#> = TextStyle(fontName: "<#=fontName#>", fontSize: <#=fontSize#>, kerning: <#=kerning#>, lineHeight: <#=lineHeight#>, color: Color(red: <#=colorRed#> / 255, green: <#=colorGreen#> / 255, blue: <#=colorBlue#> / 255, opacity: <#=colorAlpha#>))
</textStyleDeclaration>
<textStyleMigrationDeclaration>
    @available(*, deprecated, renamed: "<#=newName#>")
    static var <#=oldName#>: TextStyle { <#=newName#> }
</textStyleMigrationDeclaration>
}
`

const sampleChangelogTemplate = `<#@fileExtension=md#>
<headerDeclaration>
<!-- <#=headerLine#> -->
</headerDeclaration>
# Design style changes

## Updated
<styleDeclaration>
- **<#=styleName#>**: <#=changes#>
</styleDeclaration>

## Renamed
<colorMigrationDeclaration>
- Color <#=oldStyleName#> → <#=newStyleName#>
</colorMigrationDeclaration>
<textStyleMigrationDeclaration>
- Text style <#=oldStyleName#> → <#=newStyleName#>
</textStyleMigrationDeclaration>

## Deprecated and still referenced
<deprecationDeclaration>
- <#=styleName#> (<#=name#>): <#=referencedIn#>
</deprecationDeclaration>
`
