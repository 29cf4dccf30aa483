// Package sitefiles lists the files of a static site build directory.
package sitefiles

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
	"github.com/ntsaini/s3-site-deploy/internal/common"
	"github.com/ntsaini/s3-site-deploy/internal/service/s3upload"
)

// Enumerate walks root recursively and returns one entry per regular file.
// Symlinks to regular files are included under the link's own path; broken
// links and links to directories are skipped. Paths relative to root are
// matched against the doublestar excludes; a matching directory is skipped
// entirely.
func Enumerate(root string, excludes []string) ([]common.FileEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("error resolving source dir %s: %w", root, err)
	}

	var entries []common.FileEntry

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if isExcluded(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}

		entries = append(entries, common.FileEntry{
			RelPath:     rel,
			AbsPath:     path,
			ContentType: s3upload.ContentTypeByFile(d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking source dir %s: %w", root, err)
	}
	return entries, nil
}

func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func isExcluded(path string, excludeList []string) bool {
	for _, excludePattern := range excludeList {
		if matched, _ := doublestar.Match(excludePattern, path); matched {
			return true
		}
	}
	return false
}
