package stylegen

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/stylegen/internal/styles"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the number of files read at once.
const maxConcurrentReads = 8

// StyleReference is one occurrence of a deprecated style's code name.
type StyleReference struct {
	StyleName string       // "Old Red"
	CodeName  string       // "oldRed"
	Location  FileLocation // Where it was found
}

// FileLocation tracks where a reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column (exact start of the code name)
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually read (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// Comment lines are not reported as references
var commentPattern = regexp.MustCompile(`^\s*(//|/\*)`)

// Scanner finds and reads the project files searched for style references.
type Scanner struct {
	FS      afero.Fs
	Exclude []string // Glob patterns of files never read (e.g. generated outputs)
	Logger  logrus.FieldLogger
}

// NewScanner returns a scanner over fsys.
func NewScanner(fsys afero.Fs, exclude []string, logger logrus.FieldLogger) *Scanner {
	return &Scanner{FS: fsys, Exclude: exclude, Logger: loggerOrDiscard(logger)}
}

// Scan expands patterns and reads every matching file concurrently. The
// result is sorted by file name. Unreadable files are skipped.
func (s *Scanner) Scan(ctx context.Context, patterns []string) ([]styles.SourceFile, ScanStats, error) {
	paths, stats, err := s.expandGlobPatterns(patterns)
	if err != nil {
		return nil, stats, err
	}

	contents := make([]string, len(paths))
	readOK := make([]bool, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, err := afero.ReadFile(s.FS, p)
			if err != nil {
				s.Logger.WithField("file", p).WithError(err).Debug("skipping unreadable file")
				return nil
			}
			contents[i] = string(data)
			readOK[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	files := make([]styles.SourceFile, 0, len(paths))
	for i, p := range paths {
		if !readOK[i] {
			stats.FilesScanned--
			stats.FilesSkipped++
			continue
		}
		files = append(files, styles.SourceFile{Name: p, Content: contents[i]})
	}

	s.Logger.WithField("count", stats.FilesScanned).Debug("scanned project files")
	return files, stats, nil
}

// expandGlobPatterns expands glob patterns to file paths with statistics.
// Relative patterns are matched through the scanner's file system; absolute
// ones against the OS file system.
func (s *Scanner) expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}
	gi := s.loadGitIgnore()

	for _, pattern := range patterns {
		matches, err := s.glob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := s.FS.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(allFiles)
	return allFiles, stats, nil
}

func (s *Scanner) glob(pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		return doublestar.FilepathGlob(pattern)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(s.FS), path.Clean(filepath.ToSlash(pattern)))
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = filepath.FromSlash(m)
	}
	return matches, nil
}

// loadGitIgnore compiles the project's .gitignore. A missing file is fine.
func (s *Scanner) loadGitIgnore() *ignore.GitIgnore {
	data, err := afero.ReadFile(s.FS, ".gitignore")
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}

// shouldSkipFile determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Exclude patterns (generated outputs and the like)
// 2. Gitignore check, only for relative paths within the project
func (s *Scanner) shouldSkipFile(file string, gi *ignore.GitIgnore) bool {
	slashed := filepath.ToSlash(file)
	for _, pattern := range s.Exclude {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), slashed); ok {
			return true
		}
	}

	if !filepath.IsAbs(file) && gi != nil && gi.MatchesPath(slashed) {
		return true
	}

	return false
}

// LocateReferences finds every occurrence of the code names in files.
// codeNames maps a style's display name to its code name. Stylesheets are
// tokenized so only identifiers and custom properties count; other files are
// searched line by line, skipping comment lines.
func LocateReferences(files []styles.SourceFile, codeNames map[string]string) []StyleReference {
	names := make([]string, 0, len(codeNames))
	for styleName, codeName := range codeNames {
		if codeName != "" {
			names = append(names, styleName)
		}
	}
	sort.Strings(names)

	var refs []StyleReference
	for _, f := range files {
		if isStylesheet(f.Name) {
			refs = append(refs, locateInStylesheet(f, names, codeNames)...)
			continue
		}
		refs = append(refs, locateInLines(f, names, codeNames)...)
	}
	return refs
}

func isStylesheet(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css", ".scss":
		return true
	}
	return false
}

func locateInLines(f styles.SourceFile, names []string, codeNames map[string]string) []StyleReference {
	var refs []StyleReference
	for i, line := range strings.Split(f.Content, "\n") {
		if commentPattern.MatchString(line) {
			continue
		}
		for _, styleName := range names {
			codeName := codeNames[styleName]
			offset := 0
			for {
				idx := strings.Index(line[offset:], codeName)
				if idx == -1 {
					break
				}
				refs = append(refs, StyleReference{
					StyleName: styleName,
					CodeName:  codeName,
					Location: FileLocation{
						File:   f.Name,
						Line:   i + 1,
						Column: offset + idx + 1,
						Text:   strings.TrimRight(line, "\r"),
					},
				})
				offset += idx + len(codeName)
			}
		}
	}
	return refs
}

// locateInStylesheet matches whole identifier and custom property tokens,
// so "--oldRed" or "oldRed" count but "oldRedder" does not.
func locateInStylesheet(f styles.SourceFile, names []string, codeNames map[string]string) []StyleReference {
	byCode := make(map[string]string, len(names))
	for _, styleName := range names {
		if _, exists := byCode[codeNames[styleName]]; !exists {
			byCode[codeNames[styleName]] = styleName
		}
	}

	lines := strings.Split(f.Content, "\n")
	lexer := css.NewLexer(parse.NewInputString(f.Content))

	var refs []StyleReference
	line, col := 1, 1
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		text := string(data)

		var candidate string
		if tt == css.IdentToken || tt == css.CustomPropertyNameToken {
			candidate = strings.TrimPrefix(text, "--")
		}
		if styleName, ok := byCode[candidate]; ok && candidate != "" {
			column := col + len(text) - len(candidate)
			refs = append(refs, StyleReference{
				StyleName: styleName,
				CodeName:  candidate,
				Location: FileLocation{
					File:   f.Name,
					Line:   line,
					Column: column,
					Text:   strings.TrimRight(lines[line-1], "\r"),
				},
			})
		}

		if n := strings.Count(text, "\n"); n > 0 {
			line += n
			col = len(text) - strings.LastIndex(text, "\n")
		} else {
			col += len(text)
		}
	}
	return refs
}

// GetRelativePath returns path relative to base, or path when that fails.
func GetRelativePath(base, absPath string) string {
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
