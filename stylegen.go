// Package stylegen generates source code from exported design styles and
// keeps it stable across exports.
//
// Each run compares the latest style document with the snapshot written by
// the previous run. Styles removed upstream are kept as deprecated, renamed
// styles get aliases under their old code name, and attribute changes are
// written to a changelog.
//
// # Generation
//
//	config := stylegen.Config{
//		StylesFile:   "design/styles.json",
//		SnapshotFile: "design/.stylegen-snapshot.json",
//		OutputDir:    "Sources/DesignSystem",
//		Templates: stylegen.Templates{
//			Color: "templates/colors.swift.tmpl",
//			Text:  "templates/text.swift.tmpl",
//		},
//		ScanPaths: []string{"Sources/**/*.swift"},
//	}
//	result, err := stylegen.Generate(config)
//
// # Checking
//
// Find code that still uses deprecated styles:
//
//	result, err := stylegen.Check(stylegen.CheckConfig{
//		SnapshotFile: "design/.stylegen-snapshot.json",
//		ScanPaths:    []string{"Sources/**/*.swift"},
//		ScanExclude:  []string{"Sources/DesignSystem/**"},
//	})
//
// # Templates
//
// A template declares its file extension and repeats declaration blocks
// once per style:
//
//	<#@fileExtension=swift#>
//	<headerDeclaration>
//	// <#=headerLine#>
//	</headerDeclaration>
//	extension UIColor {
//	<colorDeclaration>
//	    <#?isDeprecated=true#>@available(*, deprecated)
//	    static let <#=name#> = UIColor(red: <#=red#>/255, green: <#=green#>/255, blue: <#=blue#>/255, alpha: <#=alpha#>)
//	</colorDeclaration>
//	}
//
// # CLI Tool
//
//	go install github.com/yacobolo/stylegen/cmd/stylegen@latest
package stylegen
