package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docsync"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Configs.Load(deps.ConfigPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	docsets, err := cfg.Resolve(c.Docsets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	for _, ds := range docsets {
		report, err := deps.Coordinator.Status(deps.Ctx, ds)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		if report.Docset == nil {
			fmt.Fprintf(deps.Stdout, "%s: not initialized\n", ds.ID)
			continue
		}

		dm := report.Docset
		fmt.Fprintf(deps.Stdout, "%s (%s): %d files from %d sources, last refreshed %s\n",
			ds.ID, dm.DocsetName, dm.TotalFiles, dm.SourcesCount, dm.LastRefreshed.Format(time.RFC3339))

		for _, s := range report.Sources {
			if s.Metadata == nil {
				fmt.Fprintf(deps.Stdout, "  [%d] %s %s: never loaded\n", s.Index, s.Source.Kind, s.Source.URL)
				continue
			}
			m := s.Metadata
			state := "clean"
			if s.Drift != nil && !s.Drift.Clean() {
				state = fmt.Sprintf("drift: %d missing, %d modified", len(s.Drift.Missing), len(s.Drift.Modified))
			}
			fmt.Fprintf(deps.Stdout, "  [%d] %s %s: %d files, %s, %s\n",
				s.Index, m.Type, m.URL, m.FilesCount, shortID(m.ContentID), state)
		}

		if err := c.printHistory(deps, ds.ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *StatusCmd) printHistory(deps *Dependencies, docsetID string) error {
	if deps.Runs == nil || c.History <= 0 {
		return nil
	}
	runs, err := deps.Runs.FindSyncRuns(deps.Ctx, docsync.SyncRunFilter{DocsetID: &docsetID, Limit: c.History})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if len(runs) == 0 {
		return nil
	}
	fmt.Fprintln(deps.Stdout, "  recent syncs:")
	for _, r := range runs {
		line := fmt.Sprintf("    %s [%d] %s %d files in %s", r.StartedAt.Format(time.RFC3339), r.SourceIndex, r.Status, r.FilesCount, r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			line += ": " + r.Error
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}

func shortID(id string) string {
	if id == "" {
		return "no content id"
	}
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
