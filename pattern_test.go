package docsync_test

import (
	"sort"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/stretchr/testify/assert"
)

func TestDiscoverDirectoryPatterns(t *testing.T) {
	t.Parallel()

	t.Run("collapses directories with several files", func(t *testing.T) {
		t.Parallel()

		files := []string{
			"README.md",
			"docs/guide/intro.md",
			"docs/guide/advanced.md",
			"docs/api/ref.md",
			"examples/basic.js",
			"examples/adv.js",
			"src/index.ts",
		}

		got := docsync.DiscoverDirectoryPatterns(files)

		assert.Contains(t, got, "docs/")
		assert.Contains(t, got, "examples/")
		assert.Contains(t, got, "README.md")
		assert.Contains(t, got, "src/index.ts")
		assert.NotContains(t, got, "docs/guide/intro.md")
		assert.NotContains(t, got, "examples/basic.js")
		assert.True(t, sort.StringsAreSorted(got))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		got := docsync.DiscoverDirectoryPatterns(nil)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("single top-level directory", func(t *testing.T) {
		t.Parallel()

		got := docsync.DiscoverDirectoryPatterns([]string{"docs/a/b/c.md", "docs/x.md", "docs/a/y/z/w.md"})

		assert.Equal(t, []string{"docs/"}, got)
	})

	t.Run("single file group stays literal", func(t *testing.T) {
		t.Parallel()

		got := docsync.DiscoverDirectoryPatterns([]string{"guide/only.md", "notes.md"})

		assert.Equal(t, []string{"guide/only.md", "notes.md"}, got)
	})

	t.Run("duplicates do not form a group", func(t *testing.T) {
		t.Parallel()

		got := docsync.DiscoverDirectoryPatterns([]string{"guide/only.md", "guide/only.md"})

		assert.Equal(t, []string{"guide/only.md"}, got)
	})
}

func TestDiscoverMinimalPatterns(t *testing.T) {
	t.Parallel()

	files := []string{
		"README.md",
		"docs/guide/intro.md",
		"docs/api/ref.md",
		"examples/basic.js",
		"src/index.ts",
		"examples/adv.js",
	}
	want := []string{"README.md", "docs/", "examples/", "src/index.ts"}

	permutations := [][]string{
		files,
		{files[5], files[4], files[3], files[2], files[1], files[0]},
		{files[2], files[0], files[4], files[1], files[5], files[3]},
	}

	for _, p := range permutations {
		assert.Equal(t, want, docsync.DiscoverMinimalPatterns(p))
	}
}
