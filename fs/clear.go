package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsync"
)

// SafelyClearDirectory removes targetDir and everything below it. Symlinks
// met at any depth are unlinked and never followed, so content they point
// at is left untouched. A missing directory is not an error.
func SafelyClearDirectory(targetDir string) error {
	fi, err := os.Lstat(targetDir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if !fi.IsDir() {
		return os.Remove(targetDir)
	}
	return clearDir(targetDir)
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		// ReadDir reports the link itself, not its target.
		if e.IsDir() {
			if err := clearDir(p); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return os.Remove(dir)
}

// GetDirectoryInfo counts the direct entries of dir. A missing directory
// yields an all-zero result.
func GetDirectoryInfo(dir string) (docsync.DirectoryInfo, error) {
	var info docsync.DirectoryInfo

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return info, nil
	} else if err != nil {
		return info, err
	}

	for _, e := range entries {
		switch {
		case e.Type()&os.ModeSymlink != 0:
			info.Symlinks++
		case e.IsDir():
			info.Directories++
		default:
			info.Files++
		}
	}
	info.Total = len(entries)
	return info, nil
}

// ContainsSymlinks reports whether dir has at least one direct symlink entry.
func ContainsSymlinks(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Type()&os.ModeSymlink != 0 {
			return true
		}
	}
	return false
}

// RemoveFiles deletes the given paths relative to targetDir, skipping ones
// already gone, and prunes directories left empty. Paths escaping
// targetDir are refused. Paths whose parent directories pass through a
// symlink are left alone, so content behind a linked folder is never
// deleted. It returns the number of files removed.
func RemoveFiles(targetDir string, files []string) (int, error) {
	root, err := filepath.Abs(targetDir)
	if err != nil {
		return 0, err
	}

	var removed int
	parents := make(map[string]struct{})
	for _, rel := range files {
		p, err := within(root, rel)
		if err != nil {
			return removed, err
		}
		if link, err := linkOnPath(root, p, false); err != nil {
			return removed, err
		} else if link != "" {
			continue
		}
		fi, err := os.Lstat(p)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return removed, err
		}
		if fi.IsDir() {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
		parents[filepath.Dir(p)] = struct{}{}
	}

	for dir := range parents {
		pruneEmpty(root, dir)
	}
	return removed, nil
}

// pruneEmpty removes dir and its ancestors while they are empty, stopping
// at root.
func pruneEmpty(root, dir string) {
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// within joins rel onto root and rejects results outside root.
func within(root, rel string) (string, error) {
	p := filepath.Join(root, filepath.FromSlash(rel))
	if p == root || !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", docsync.Errorf(docsync.EUNSAFE, "path %q escapes %s", rel, root)
	}
	return p, nil
}

// linkOnPath returns the first existing component of p below root that is
// a symlink, or "" when there is none. The final component is checked only
// when last is set. The walk stops at the first missing component.
func linkOnPath(root, p string, last bool) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", err
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if !last {
		parts = parts[:len(parts)-1]
	}

	cur := root
	for _, part := range parts {
		cur = filepath.Join(cur, part)
		fi, err := os.Lstat(cur)
		if os.IsNotExist(err) {
			return "", nil
		} else if err != nil {
			return "", err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return cur, nil
		}
	}
	return "", nil
}
