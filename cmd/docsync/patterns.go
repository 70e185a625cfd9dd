package main

import (
	iofs "io/fs"
	"path/filepath"

	"github.com/fwojciec/docsync"
	"gopkg.in/yaml.v3"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	var files []string
	err := filepath.WalkDir(c.Dir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(c.Dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return err
	}

	if !c.All {
		files = docsync.ClassifyAll(files)
	}

	enc := yaml.NewEncoder(deps.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(struct {
		Paths []string `yaml:"paths"`
	}{Paths: docsync.DiscoverMinimalPatterns(files)})
}
