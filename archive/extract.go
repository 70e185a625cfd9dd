package archive

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsync"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// Format is a supported archive format.
type Format string

// Format constants.
const (
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
)

// DetectFormat determines the archive format from the locator suffix.
// For URLs only the path is considered, so query strings do not matter.
func DetectFormat(locator string) (Format, error) {
	name := locator
	if isRemote(locator) {
		if u, err := url.Parse(locator); err == nil {
			name = u.Path
		}
	}
	name = strings.ToLower(name)

	switch {
	case strings.HasSuffix(name, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGz, nil
	default:
		return "", docsync.Errorf(docsync.EEXTRACT, "unsupported archive format: %s (expected .zip, .tar.gz or .tgz)", locator)
	}
}

// Extract unpacks the archive at src into dest. Entries that would land
// outside dest are rejected; links and special files are skipped.
func Extract(ctx context.Context, format Format, src, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}

	var err error
	switch format {
	case FormatZip:
		err = extractZip(ctx, src, dest)
	case FormatTarGz:
		err = extractTarGz(ctx, src, dest)
	default:
		return docsync.Errorf(docsync.EEXTRACT, "unsupported archive format %q", string(format))
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return docsync.Errorf(docsync.EEXTRACT, "extraction of %s aborted: %v", filepath.Base(src), err)
	}
	if docsync.ErrorCode(err) == docsync.EINTERNAL {
		return docsync.Errorf(docsync.EEXTRACT, "corrupt %s archive %s: %v", format, filepath.Base(src), err)
	}
	return err
}

func extractZip(ctx context.Context, src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if skipEntry(f.Name) {
			continue
		}
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case mode.IsRegular():
			rc, err := f.Open()
			if err != nil {
				return err
			}
			err = writeFile(target, rc, mode.Perm())
			rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func extractTarGz(ctx context.Context, src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if skipEntry(hdr.Name) {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			target, err := safeJoin(dest, hdr.Name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			target, err := safeJoin(dest, hdr.Name)
			if err != nil {
				return err
			}
			if err := writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		}
	}
}

// skipEntry reports archive entries that are never content, such as the
// resource forks macOS adds to zip files.
func skipEntry(name string) bool {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	return name == "" || name == "__MACOSX" || strings.HasPrefix(name, "__MACOSX/") || path.Base(name) == ".DS_Store"
}

func safeJoin(dest, name string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(name))
	if clean == "/" {
		return dest, nil
	}
	if filepath.IsAbs(name) || strings.HasPrefix(filepath.ToSlash(name), "/") || containsDotDot(name) {
		return "", docsync.Errorf(docsync.EEXTRACT, "illegal path in archive: %s", name)
	}
	return filepath.Join(dest, filepath.FromSlash(clean[1:])), nil
}

func containsDotDot(name string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(name), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Flatten removes a single wrapper directory such as "project-v1.2.3/"
// left by export tools: when dir holds exactly one directory and nothing
// else, that directory's children are moved up and the wrapper removed.
// It reports whether flattening happened.
func Flatten(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return false, nil
	}

	// Move the wrapper aside first so a child with the wrapper's own name
	// can take its place.
	staged := dir + ".flatten"
	if err := os.Rename(filepath.Join(dir, entries[0].Name()), staged); err != nil {
		return false, err
	}

	children, err := os.ReadDir(staged)
	if err != nil {
		return false, err
	}
	for _, c := range children {
		if err := os.Rename(filepath.Join(staged, c.Name()), filepath.Join(dir, c.Name())); err != nil {
			return false, err
		}
	}
	return true, os.Remove(staged)
}
