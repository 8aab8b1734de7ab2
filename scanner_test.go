package stylegen

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/stylegen/internal/styles"
)

// tempFS returns a file system rooted at a fresh temporary directory.
func tempFS(t *testing.T) afero.Fs {
	t.Helper()
	return afero.NewBasePathFs(afero.NewOsFs(), t.TempDir())
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func TestScannerScan(t *testing.T) {
	fsys := tempFS(t)
	writeFile(t, fsys, "Sources/App/Profile.swift", "label.textColor = .oldRed")
	writeFile(t, fsys, "Sources/App/Home.swift", "label.textColor = .brand")
	writeFile(t, fsys, "Sources/DesignSystem/Colors.swift", "static let oldRed = UIColor()")
	writeFile(t, fsys, "Sources/Vendor/Lib.swift", "oldRed")
	writeFile(t, fsys, "README.md", "oldRed")
	writeFile(t, fsys, ".gitignore", "Sources/Vendor/\n")

	scanner := NewScanner(fsys, []string{"Sources/DesignSystem/**"}, nil)
	files, stats, err := scanner.Scan(context.Background(), []string{"Sources/**/*.swift", "./Sources/App/*.swift"})
	require.NoError(t, err)

	names := lo.Map(files, func(f styles.SourceFile, _ int) string { return f.Name })
	assert.Equal(t, []string{"Sources/App/Home.swift", "Sources/App/Profile.swift"}, names)
	assert.Equal(t, "label.textColor = .oldRed", files[1].Content)

	assert.Equal(t, 4, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 2, stats.FilesSkipped)
}

func TestScannerNoMatches(t *testing.T) {
	scanner := NewScanner(tempFS(t), nil, nil)
	files, stats, err := scanner.Scan(context.Background(), []string{"**/*.kt"})
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Zero(t, stats.FilesDiscovered)
}

func TestScannerBadPattern(t *testing.T) {
	scanner := NewScanner(tempFS(t), nil, nil)
	_, _, err := scanner.Scan(context.Background(), []string{"src/[.swift"})
	assert.Error(t, err)
}

func TestScannerCancelled(t *testing.T) {
	fsys := tempFS(t)
	writeFile(t, fsys, "a.swift", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewScanner(fsys, nil, nil).Scan(ctx, []string{"*.swift"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShouldSkipFile(t *testing.T) {
	scanner := NewScanner(afero.NewMemMapFs(), []string{"gen/**", "**/*.generated.swift"}, nil)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"excluded directory", "gen/Colors.swift", true},
		{"excluded suffix", "Sources/Theme.generated.swift", true},
		{"regular file", "Sources/Theme.swift", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scanner.shouldSkipFile(tt.path, nil))
		})
	}
}

func TestLocateReferences(t *testing.T) {
	files := []styles.SourceFile{
		{Name: "View.swift", Content: "let a = Color.oldRed\n\tlet b = [.oldRed, .oldRed]\n// oldRed in a comment\nlet c = Color.brand"},
		{Name: "theme.css", Content: ".card {\n  color: var(--oldRed);\n}\n.oldRedder { }\n"},
	}

	refs := LocateReferences(files, map[string]string{"Old Red": "oldRed", "Empty": ""})

	locations := lo.Map(refs, func(r StyleReference, _ int) FileLocation { return r.Location })
	assert.Equal(t, []FileLocation{
		{File: "View.swift", Line: 1, Column: 15, Text: "let a = Color.oldRed"},
		{File: "View.swift", Line: 2, Column: 12, Text: "\tlet b = [.oldRed, .oldRed]"},
		{File: "View.swift", Line: 2, Column: 21, Text: "\tlet b = [.oldRed, .oldRed]"},
		{File: "theme.css", Line: 2, Column: 16, Text: "  color: var(--oldRed);"},
	}, locations)

	for _, r := range refs {
		assert.Equal(t, "Old Red", r.StyleName)
		assert.Equal(t, "oldRed", r.CodeName)
	}
}

func TestGetRelativePath(t *testing.T) {
	assert.Equal(t, "b/c.swift", GetRelativePath("/a", "/a/b/c.swift"))
	assert.Equal(t, "rel/x", GetRelativePath("/a", "rel/x"))
}
