package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HashFiles computes the content hash of a loaded source: the files are
// sorted and each one's relative path followed by its bytes is fed into a
// single SHA-256, so the digest does not depend on enumeration order.
// Unreadable files are skipped and reported as warnings.
func HashFiles(root string, files []string) (string, []string) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var warnings []string
	h := sha256.New()
	for _, rel := range sorted {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("hashing %s: %v", rel, err))
			continue
		}
		h.Write([]byte(rel))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), warnings
}

// HashStrings returns the hex SHA-256 of parts joined by newlines.
func HashStrings(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 of the file contents.
func HashFile(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
