package refresh

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
	"github.com/rs/zerolog"
)

// Coordinator initialises and refreshes docset directories. Sources are
// processed one at a time, in configuration order.
type Coordinator struct {
	Registry *Registry
	Metadata docsync.MetadataStore

	// Runs records each source outcome. Optional.
	Runs docsync.SyncRunService

	Logger zerolog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCoordinator creates a Coordinator with a no-op logger.
func NewCoordinator(registry *Registry, metadata docsync.MetadataStore) *Coordinator {
	return &Coordinator{
		Registry: registry,
		Metadata: metadata,
		Logger:   zerolog.Nop(),
		Now:      time.Now,
	}
}

// Init populates a fresh docset directory from every source and writes the
// docset metadata. An existing directory is only replaced with Force.
// Per-source failures are reported in the result, not as an error.
func (c *Coordinator) Init(ctx context.Context, docset *docsync.Docset, opts Options) (*InitResult, error) {
	if err := docset.Validate(); err != nil {
		return nil, err
	}

	result := &InitResult{}
	if _, err := os.Lstat(docset.Dir); err == nil {
		if !opts.Force {
			return nil, docsync.Errorf(docsync.EINVALID, "docset %q already initialized at %s (use --force to replace it)", docset.ID, docset.Dir)
		}
		info, err := c.clear(docset.Dir)
		if err != nil {
			return nil, err
		}
		result.Cleared = &info
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := os.MkdirAll(docset.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating docset directory: %w", err)
	}

	now := c.Now()
	var total int
	for i := range docset.Sources {
		src := &docset.Sources[i]
		begin := c.Now()

		var sr SourceResult
		if src.Kind == docsync.KindLocalFolder {
			sr = c.link(ctx, docset, i, src, now)
		} else {
			sr = c.initSource(ctx, docset, i, src, now)
		}
		total += sr.Files
		c.finish(ctx, docset, &sr, begin)
		result.Sources = append(result.Sources, sr)
	}

	err := c.Metadata.SaveDocsetMetadata(ctx, docset.Dir, &docsync.DocsetMetadata{
		DocsetID:      docset.ID,
		DocsetName:    docset.Name,
		InitializedAt: now,
		LastRefreshed: now,
		SourcesCount:  len(docset.Sources),
		TotalFiles:    total,
	})
	if err != nil {
		return nil, fmt.Errorf("saving docset metadata: %w", err)
	}
	return result, nil
}

// Refresh brings an initialized docset up to date. Sources whose content ID
// matches the stored one only get a new timestamp unless Force is set;
// changed sources have their previous files removed and are loaded again.
// The docset metadata is restored from backup if any source fails.
func (c *Coordinator) Refresh(ctx context.Context, docset *docsync.Docset, opts Options) (*RefreshResult, error) {
	if err := docset.Validate(); err != nil {
		return nil, err
	}

	dm, err := c.Metadata.FindDocsetMetadata(ctx, docset.Dir)
	if docsync.ErrorCode(err) == docsync.ENOTFOUND {
		return &RefreshResult{NotInitialized: true}, nil
	} else if err != nil {
		return nil, err
	}

	if err := c.Metadata.BackupDocsetMetadata(ctx, docset.Dir); err != nil {
		return nil, fmt.Errorf("backing up docset metadata: %w", err)
	}

	result := &RefreshResult{}
	now := c.Now()
	var total int
	for i := range docset.Sources {
		src := &docset.Sources[i]
		begin := c.Now()

		var sr SourceResult
		if src.Kind == docsync.KindLocalFolder {
			sr = c.link(ctx, docset, i, src, now)
		} else {
			sr = c.refresh(ctx, docset, i, src, now, opts.Force)
		}
		total += sr.Files
		c.finish(ctx, docset, &sr, begin)
		result.Sources = append(result.Sources, sr)
	}

	if result.Failed() > 0 {
		if err := c.Metadata.RestoreDocsetMetadata(ctx, docset.Dir); err != nil {
			return result, fmt.Errorf("restoring docset metadata: %w", err)
		}
		return result, nil
	}

	dm.DocsetName = docset.Name
	dm.LastRefreshed = now
	dm.SourcesCount = len(docset.Sources)
	dm.TotalFiles = total
	if err := c.Metadata.SaveDocsetMetadata(ctx, docset.Dir, dm); err != nil {
		return result, fmt.Errorf("saving docset metadata: %w", err)
	}
	if err := c.Metadata.DiscardDocsetBackup(ctx, docset.Dir); err != nil {
		c.Logger.Warn().Err(err).Str("docset", docset.ID).Msg("discarding metadata backup")
	}
	return result, nil
}

// Status reports the stored metadata of a docset and how its files on disk
// have drifted from it.
func (c *Coordinator) Status(ctx context.Context, docset *docsync.Docset) (*StatusReport, error) {
	if err := docset.Validate(); err != nil {
		return nil, err
	}

	dm, err := c.Metadata.FindDocsetMetadata(ctx, docset.Dir)
	if docsync.ErrorCode(err) == docsync.ENOTFOUND {
		return &StatusReport{}, nil
	} else if err != nil {
		return nil, err
	}

	report := &StatusReport{Docset: dm}
	for i, src := range docset.Sources {
		st := SourceStatus{Index: i, Source: src}
		m, err := c.Metadata.FindSourceMetadata(ctx, docset.Dir, i)
		switch {
		case docsync.ErrorCode(err) == docsync.ENOTFOUND:
		case err != nil:
			return nil, err
		default:
			st.Metadata = m
			if src.Kind != docsync.KindLocalFolder {
				st.Drift = fs.Verify(docset.Dir, m)
			}
		}
		report.Sources = append(report.Sources, st)
	}
	return report, nil
}

// Clear removes the docset directory and its sync history. It returns what
// the directory held before removal.
func (c *Coordinator) Clear(ctx context.Context, docset *docsync.Docset) (docsync.DirectoryInfo, error) {
	if err := docset.Validate(); err != nil {
		return docsync.DirectoryInfo{}, err
	}
	info, err := c.clear(docset.Dir)
	if err != nil {
		return info, err
	}
	if c.Runs != nil {
		if err := c.Runs.DeleteSyncRuns(ctx, docset.ID); err != nil {
			return info, fmt.Errorf("deleting sync history: %w", err)
		}
	}
	return info, nil
}

func (c *Coordinator) clear(dir string) (docsync.DirectoryInfo, error) {
	info, err := fs.GetDirectoryInfo(dir)
	if err != nil {
		return info, err
	}
	if fs.ContainsSymlinks(dir) {
		c.Logger.Warn().Str("dir", dir).Int("symlinks", info.Symlinks).Msg("directory contains symlinks; links will be removed, their targets kept")
	}
	c.Logger.Info().
		Str("dir", dir).
		Int("files", info.Files).
		Int("directories", info.Directories).
		Int("symlinks", info.Symlinks).
		Msg("clearing directory")
	if err := fs.SafelyClearDirectory(dir); err != nil {
		return info, fmt.Errorf("clearing %s: %w", dir, err)
	}
	return info, nil
}

// link (re)creates the symlinks of a local folder source.
func (c *Coordinator) link(ctx context.Context, docset *docsync.Docset, index int, src *docsync.Source, now time.Time) SourceResult {
	sr := SourceResult{Index: index, Source: *src}
	if err := src.Validate(); err != nil {
		return failed(sr, err)
	}

	names, err := fs.CreateSymlinks(src.Paths, docset.Dir, docset.ProjectRoot)
	if err != nil {
		return failed(sr, err)
	}

	err = c.Metadata.SaveSourceMetadata(ctx, docset.Dir, index, &docsync.SourceMetadata{
		URL:        strings.Join(src.Paths, ","),
		Type:       src.Kind,
		Timestamp:  now,
		FilesCount: len(names),
		Files:      names,
	})
	if err != nil {
		return failed(sr, fmt.Errorf("saving source metadata: %w", err))
	}

	sr.Status = docsync.SyncLinked
	sr.Files = len(names)
	return sr
}

// refresh reloads one source unless its content ID is unchanged.
func (c *Coordinator) refresh(ctx context.Context, docset *docsync.Docset, index int, src *docsync.Source, now time.Time, force bool) SourceResult {
	sr := SourceResult{Index: index, Source: *src}

	prior, err := c.Metadata.FindSourceMetadata(ctx, docset.Dir, index)
	if docsync.ErrorCode(err) == docsync.ENOTFOUND {
		prior = nil
	} else if err != nil {
		return failed(sr, err)
	}

	loader, err := c.prepare(src)
	if err != nil {
		return failed(sr, err)
	}

	id := loader.ContentID(ctx, src)
	if !force && prior != nil && prior.ContentID != "" && prior.ContentID == id {
		prior.Timestamp = now
		if err := c.Metadata.SaveSourceMetadata(ctx, docset.Dir, index, prior); err != nil {
			return failed(sr, fmt.Errorf("saving source metadata: %w", err))
		}
		sr.Status = docsync.SyncUnchanged
		sr.ContentID = id
		sr.Files = prior.FilesCount
		return sr
	}

	if prior != nil {
		n, err := fs.RemoveFiles(docset.Dir, prior.Files)
		if err != nil {
			return failed(sr, err)
		}
		c.Logger.Debug().Str("docset", docset.ID).Int("source", index).Int("removed", n).Msg("removed previous files")
	}

	return c.load(ctx, docset, sr, loader, id, now)
}

func (c *Coordinator) initSource(ctx context.Context, docset *docsync.Docset, index int, src *docsync.Source, now time.Time) SourceResult {
	sr := SourceResult{Index: index, Source: *src}
	loader, err := c.prepare(src)
	if err != nil {
		return failed(sr, err)
	}
	return c.load(ctx, docset, sr, loader, loader.ContentID(ctx, src), now)
}

// load fetches one source into the docset directory and saves its
// metadata under the given content ID.
func (c *Coordinator) load(ctx context.Context, docset *docsync.Docset, sr SourceResult, loader docsync.Loader, id string, now time.Time) SourceResult {
	src := &sr.Source
	sr.ContentID = id

	res := loader.Load(ctx, src, docset.Dir)
	sr.Warnings = res.Warnings
	if !res.Success || res.Err != nil {
		err := res.Err
		if err == nil {
			err = docsync.Errorf(docsync.EINTERNAL, "load of %s failed", src.URL)
		}
		if len(res.Files) > 0 {
			n, rmErr := fs.RemoveFiles(docset.Dir, res.Files)
			c.Logger.Debug().Err(rmErr).Str("docset", docset.ID).Int("source", sr.Index).Int("removed", n).Msg("removed partial files")
		}
		return failed(sr, err)
	}

	err := c.Metadata.SaveSourceMetadata(ctx, docset.Dir, sr.Index, &docsync.SourceMetadata{
		URL:          src.URL,
		Type:         src.Kind,
		Branch:       src.Branch,
		Timestamp:    now,
		FilesCount:   len(res.Files),
		Files:        res.Files,
		ContentHash:  res.ContentHash,
		ContentID:    id,
		Fingerprints: fs.Fingerprint(docset.Dir, res.Files),
	})
	if err != nil {
		return failed(sr, fmt.Errorf("saving source metadata: %w", err))
	}

	sr.Status = docsync.SyncUpdated
	sr.Files = len(res.Files)
	return sr
}

func (c *Coordinator) prepare(src *docsync.Source) (docsync.Loader, error) {
	loader, err := c.Registry.LoaderFor(src)
	if err != nil {
		return nil, err
	}
	if err := loader.ValidateConfig(src); err != nil {
		return nil, err
	}
	return loader, nil
}

// finish logs the outcome of one source and records it as a sync run.
func (c *Coordinator) finish(ctx context.Context, docset *docsync.Docset, sr *SourceResult, begin time.Time) {
	elapsed := c.Now().Sub(begin)

	ev := c.Logger.Info()
	if sr.Err != nil {
		ev = c.Logger.Error().Err(sr.Err)
	}
	ev.Str("docset", docset.ID).
		Int("source", sr.Index).
		Str("kind", string(sr.Source.Kind)).
		Str("status", string(sr.Status)).
		Int("files", sr.Files).
		Dur("duration", elapsed).
		Msg("source synced")

	if c.Runs == nil {
		return
	}
	run := &docsync.SyncRun{
		DocsetID:    docset.ID,
		SourceIndex: sr.Index,
		Kind:        sr.Source.Kind,
		URL:         sr.Source.URL,
		Status:      sr.Status,
		ContentID:   sr.ContentID,
		FilesCount:  sr.Files,
		StartedAt:   begin,
		Duration:    elapsed,
	}
	if sr.Err != nil {
		run.Error = errorText(sr.Err)
	}
	if err := c.Runs.CreateSyncRun(ctx, run); err != nil {
		c.Logger.Warn().Err(err).Str("docset", docset.ID).Msg("recording sync run")
	}
}

func failed(sr SourceResult, err error) SourceResult {
	sr.Status = docsync.SyncFailed
	sr.Err = err
	return sr
}

// errorText returns the application message of err, or its full text for
// internal errors.
func errorText(err error) string {
	if docsync.ErrorCode(err) == docsync.EINTERNAL {
		return err.Error()
	}
	return docsync.ErrorMessage(err)
}
