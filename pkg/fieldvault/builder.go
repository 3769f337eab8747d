package fieldvault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/fieldvault/pkg/core"
)

// Builder runs the generator pass over a vault: one synchronous walk over
// the node definitions and tabular configuration, creating whatever folders
// and metadata templates are missing.
type Builder struct {
	vault      *Vault
	nodeFile   string
	historical bool
	push       bool
	now        func() time.Time
	logger     *slog.Logger

	mu         sync.Mutex
	lastBuild  *time.Time
	lastResult string
}

// NewBuilder creates a Builder for the given vault.
func NewBuilder(v *Vault, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = v.Logger
	}

	return &Builder{
		vault:      v,
		nodeFile:   o.nodeFile,
		historical: o.historical,
		push:       o.push,
		now:        o.now,
		logger:     logger,
	}
}

// Build runs the full generator pass, committing and pushing the result
// when the vault is versioned and anything changed.
func (b *Builder) Build(ctx context.Context) (*core.Report, error) {
	return b.run(ctx, false)
}

// Validate runs the same checks as Build without touching the filesystem
// or version control. Metadata files that Build would create from templates
// are simply absent checks, not errors.
func (b *Builder) Validate(ctx context.Context) (*core.Report, error) {
	return b.run(ctx, true)
}

func (b *Builder) run(ctx context.Context, dry bool) (*core.Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	report := &core.Report{}

	if !dry {
		if err := b.vault.Pull(); err != nil {
			return nil, err
		}
	}

	nodes, err := LoadNodes(b.vault.Abs(b.nodeFile))
	if err != nil {
		return nil, err
	}

	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.buildNode(node, report, dry); err != nil {
			return nil, err
		}
	}

	if !dry && report.Changed() {
		msg := FormatCommitMessage(CommitTypeChore, "vault", "update dataset tree", report.Summary())
		if err := b.vault.CommitReport(report, msg); err != nil {
			return nil, err
		}
		if b.push {
			if err := b.vault.Push(); err != nil {
				return nil, err
			}
		}
	}

	now := b.now()
	b.lastBuild = &now
	b.lastResult = report.Summary()

	if b.logger != nil {
		b.logger.Info("pass complete", "dry_run", dry, "summary", report.Summary())
	}

	return report, nil
}

// buildNode ensures the node folder and its projects-summary table, then
// walks the table's project rows.
func (b *Builder) buildNode(node core.Node, report *core.Report, dry bool) error {
	if !dry {
		created, err := b.vault.EnsureDir(node.Name)
		if err != nil {
			return err
		}
		if created {
			report.AddDir()
		}
	}

	rel := filepath.Join(node.Name, SummaryName(node))

	if !dry {
		created, err := EnsureSummary(b.vault.Abs(rel), node)
		if err != nil {
			return err
		}
		if created {
			report.AddFile()
			report.Stage(rel)
			if b.logger != nil {
				b.logger.Info("new projects summary table built", "path", rel)
			}
		}
	}

	rows, repaired, issues, err := LoadSummary(b.vault.Abs(rel), node, !dry)
	if err != nil {
		if dry {
			// The table may simply not exist yet; a corrupt one is
			// still an issue.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			report.Skip(rel, 0, err)
			return nil
		}
		return err
	}
	if repaired {
		report.AddRepair()
		report.Stage(rel)
	}
	for _, issue := range issues {
		issue.File = rel
		report.Issues = append(report.Issues, issue)
		if b.logger != nil {
			b.logger.Warn("skipping summary row", "issue", issue.String())
		}
	}

	for i, row := range rows {
		if err := b.buildProject(node, row, rel, i+1, report, dry); err != nil {
			return err
		}
	}

	return nil
}

// buildProject ensures a project's scaffold folders, sensor subfolders,
// metadata template, site folders and field log, then walks the log rows.
func (b *Builder) buildProject(node core.Node, row core.ProjectRow, summaryRel string, rowNum int, report *core.Report, dry bool) error {
	if err := ValidateProjectName(row.Name); err != nil {
		report.Skip(summaryRel, rowNum, err)
		if b.logger != nil {
			b.logger.Warn("skipping project", "project", row.Name, "error", err)
		}
		return nil
	}

	projDir := filepath.Join(node.Name, row.Name)

	if !dry {
		for _, fld := range ScaffoldFolders {
			created, err := b.vault.EnsureDir(filepath.Join(projDir, fld))
			if err != nil {
				return err
			}
			if created {
				report.AddDir()
			}
		}

		// Only flagged sensors get a subfolder.
		for _, sensor := range row.EnabledSensors(node) {
			created, err := b.vault.EnsureDir(filepath.Join(projDir, sensor))
			if err != nil {
				return err
			}
			if created {
				report.AddDir()
			}
		}
	}

	psRel := filepath.Join(projDir, ProjectFileName)
	if !dry {
		created, err := EnsureProject(b.vault.Abs(psRel), row.Name)
		if err != nil {
			return err
		}
		if created {
			report.AddFile()
			report.Stage(psRel)
			if b.logger != nil {
				b.logger.Info("new project summary created, please edit it to add project and site information", "path", psRel)
			}
		}
	}

	summary, err := LoadProject(b.vault.Abs(psRel))
	if err != nil {
		// Nothing to validate until build creates the template.
		if dry && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		report.Skip(psRel, 0, err)
		return nil
	}

	if !dry {
		for _, site := range summary.ActiveSites() {
			siteDir := filepath.Join(projDir, site.FolderName())
			for _, fld := range ScaffoldFolders {
				created, err := b.vault.EnsureDir(filepath.Join(siteDir, fld))
				if err != nil {
					return err
				}
				if created {
					report.AddDir()
				}
			}
		}
	}

	flRel := filepath.Join(projDir, FieldLogFileName)
	if !dry {
		created, err := EnsureFieldLog(b.vault.Abs(flRel))
		if err != nil {
			return err
		}
		if created {
			report.AddFile()
			report.Stage(flRel)
		}
	}

	log, repaired, err := LoadFieldLog(b.vault.Abs(flRel))
	if err != nil {
		if dry && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		report.Skip(flRel, 0, err)
		return nil
	}
	if repaired && !dry {
		report.AddRepair()
	}

	for i := 0; i < log.Len(); i++ {
		if err := b.buildEntry(projDir, row, summary, log, flRel, i, report, dry); err != nil {
			return err
		}
	}

	if !dry && log.Dirty() {
		if err := log.Save(); err != nil {
			return err
		}
		report.Stage(flRel)
	}

	return nil
}

// buildEntry validates one field log row and materializes its run folders.
func (b *Builder) buildEntry(projDir string, row core.ProjectRow, summary *ProjectSummary, log *FieldLog, flRel string, i int, report *core.Report, dry bool) error {
	e, err := log.Entry(i)
	if err != nil {
		report.Skip(flRel, i+1, err)
		if b.logger != nil {
			b.logger.Warn("skipping field log row", "file", flRel, "row", i+1, "error", err)
		}
		return nil
	}

	sum := Checksum(e)
	completed := false
	if e.CheckSum != "" {
		if e.CheckSum != sum {
			report.Skip(flRel, i+1, fmt.Errorf("%w: row was edited after completion", core.ErrChecksumMismatch))
			return nil
		}
		completed = true
	}

	// Completed rows already passed the date window when first built.
	if err := ValidateEntry(e, row, summary, b.now(), b.historical || completed); err != nil {
		report.Skip(flRel, i+1, err)
		if b.logger != nil {
			b.logger.Warn("skipping field log row", "file", flRel, "row", i+1, "error", err)
		}
		return nil
	}

	site, _ := summary.FindSite(e.Site, e.Year)
	dayDir := filepath.Join(projDir, site.FolderName(), e.Sensor, DateFolder(e))

	if !dry {
		for run := 0; run < e.Runs; run++ {
			for _, tier := range TierFolders {
				created, err := b.vault.EnsureDir(filepath.Join(dayDir, fmt.Sprintf("run_%02d", run), tier))
				if err != nil {
					return err
				}
				if created {
					report.AddDir()
				}
			}
		}

		if e.MakeNotesFile {
			created, err := b.vault.TouchFile(filepath.Join(dayDir, "FieldNotes.txt"))
			if err != nil {
				return err
			}
			if created {
				report.AddFile()
			}
		}

		if !completed {
			log.SetChecksum(i, sum)
		}
	}

	return nil
}
