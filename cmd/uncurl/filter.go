package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Filter decides which files a directory conversion touches.
type Filter struct {
	gitIgnore       *ignore.GitIgnore
	includeAll      bool
	includeGit      bool
	baseDir         string
	includePatterns []string
	excludePatterns []string
	excludedDirs    []string
}

// NewFilter creates a filter rooted at dir. Include and exclude patterns are
// doublestar globs matched against slash-separated paths relative to dir;
// exclude patterns ending with "/" exclude whole directory subtrees.
func NewFilter(
	dir string,
	includeGitIgnore bool,
	includeGit bool,
	includePatterns []string,
	excludePatterns []string,
) (*Filter, error) {
	var excludedDirs []string
	var fileExcludePatterns []string

	for _, pat := range excludePatterns {
		if strings.HasSuffix(pat, "/") {
			excludedDirs = append(excludedDirs, strings.TrimSuffix(pat, "/"))
		} else {
			fileExcludePatterns = append(fileExcludePatterns, pat)
		}
	}

	f := &Filter{
		includeAll:      includeGitIgnore,
		includeGit:      includeGit,
		baseDir:         dir,
		includePatterns: includePatterns,
		excludePatterns: fileExcludePatterns,
		excludedDirs:    excludedDirs,
	}

	if !includeGitIgnore {
		gitIgnorePath := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			gitIgnore, err := ignore.CompileIgnoreFile(gitIgnorePath)
			if err != nil {
				return nil, err
			}
			f.gitIgnore = gitIgnore
		}
	}

	return f, nil
}

// ShouldInclude returns true if the file or directory should be converted
// (for directories: descended into).
func (f *Filter) ShouldInclude(info os.FileInfo, path string) bool {
	rel := f.relPath(path)

	if !f.includeAll && f.gitIgnore != nil && f.gitIgnore.MatchesPath(rel) {
		return false
	}

	if info.IsDir() && f.isExcludedDir(rel) {
		return false
	}

	if !f.includeGit {
		if filepath.Base(path) == ".git" || strings.Contains("/"+rel+"/", "/.git/") {
			return false
		}
	}

	if !info.IsDir() {
		if f.matchesAnyPattern(path, rel, f.excludePatterns) {
			return false
		}
		if len(f.includePatterns) > 0 {
			return f.matchesAnyPattern(path, rel, f.includePatterns)
		}
	}

	return true
}

// relPath makes path relative to the base directory, slash-separated, for
// glob and gitignore matching.
func (f *Filter) relPath(path string) string {
	rel, err := filepath.Rel(f.baseDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (f *Filter) isExcludedDir(rel string) bool {
	for _, dir := range f.excludedDirs {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// matchesAnyPattern matches the relative path against each glob; simple
// patterns like "*.py" are also tried against the base name so they apply at
// any depth.
func (f *Filter) matchesAnyPattern(path, rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && ok {
				return true
			}
		}
	}
	return false
}
