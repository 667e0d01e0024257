package fs

import (
	"fmt"
	"os"

	"github.com/karrick/godirwalk"

	"fotolink/internal/foto"
)

// BrokenLink is one symlink under the albums tree whose target does not
// resolve.
type BrokenLink struct {
	Path   string
	Target string
}

// CheckReport summarizes a tree check.
type CheckReport struct {
	Links       int          // symlinks examined
	Broken      []BrokenLink // links whose targets do not resolve
	Removed     int          // broken links removed (prune only)
	DirsRemoved int          // directories emptied and removed (prune only)
}

// CheckTree walks the albums tree and reports every symlink whose target
// does not resolve, which covers both deleted photos and unmounted photo
// roots. With prune, broken links are removed, then directories the
// removals left empty. Symlinks are never followed, so the walk stays
// inside the tree.
func CheckTree(root string, prune bool, logger foto.Logger) (*CheckReport, error) {
	if logger == nil {
		logger = foto.NewNopLogger()
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("albums tree not accessible: %w", err)
	}

	report := &CheckReport{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if !de.IsSymlink() {
				return nil
			}
			report.Links++

			if _, err := os.Stat(path); err == nil {
				return nil
			}
			target, err := os.Readlink(path)
			if err != nil {
				target = "?"
			}
			report.Broken = append(report.Broken, BrokenLink{Path: path, Target: target})
			logger.Warn("broken link", "path", path, "target", target)

			if prune {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("removing broken link %s: %w", path, err)
				}
				report.Removed++
			}
			return nil
		},
		PostChildrenCallback: func(path string, de *godirwalk.Dirent) error {
			if !prune || path == root {
				return nil
			}
			entries, err := os.ReadDir(path)
			if err != nil || len(entries) > 0 {
				return nil
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("removing empty directory %s: %w", path, err)
			}
			report.DirsRemoved++
			logger.Info("removed empty directory", "path", path)
			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return report, nil
}
