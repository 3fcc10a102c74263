package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"uilint/internal/shared/util"
)

// ScanDirectories walks the lint roots and returns every supported source
// file, minus exclusions. A root that is itself a file is taken as-is.
func (a *App) ScanDirectories(roots []string) ([]string, error) {
	dirGlobs, err := compileExcludeGlobs(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileExcludeGlobs(a.Config.Exclude.Files)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, root := range util.UniqueScanRoots(roots) {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if a.Parser.IsSupportedPath(root) {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !a.Parser.IsSupportedPath(path) {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// compileExcludeGlobs normalizes config patterns before compiling them, so
// "./node_modules" and "node_modules" exclude the same directory. Patterns
// that normalize to nothing are dropped.
func compileExcludeGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		norm := util.NormalizePatternPath(p)
		if norm == "" {
			continue
		}
		g, err := glob.Compile(norm)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
