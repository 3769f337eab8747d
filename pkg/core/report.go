package core

import "fmt"

// RowIssue records a malformed or rejected configuration row that was
// skipped. The run continues for unaffected rows.
type RowIssue struct {
	File   string `json:"file"`
	Row    int    `json:"row"` // 1-based data row, 0 when not row-scoped
	Reason string `json:"reason"`
}

func (i RowIssue) String() string {
	if i.Row > 0 {
		return fmt.Sprintf("%s (row %d): %s", i.File, i.Row, i.Reason)
	}
	return fmt.Sprintf("%s: %s", i.File, i.Reason)
}

// Report is the outcome of a generator pass. It drives the commit
// decision (Changed) and gives the CLI something to print.
type Report struct {
	DirsCreated   int        `json:"dirs_created"`
	FilesCreated  int        `json:"files_created"`
	FilesRepaired int        `json:"files_repaired"`
	Issues        []RowIssue `json:"issues,omitempty"`

	staged []string
}

// AddDir records a newly created directory.
func (r *Report) AddDir() { r.DirsCreated++ }

// AddFile records a newly created file.
func (r *Report) AddFile() { r.FilesCreated++ }

// AddRepair records a file whose columns were repaired in place.
func (r *Report) AddRepair() { r.FilesRepaired++ }

// Skip records a rejected row.
func (r *Report) Skip(file string, row int, err error) {
	r.Issues = append(r.Issues, RowIssue{File: file, Row: row, Reason: err.Error()})
}

// Stage marks a vault-relative path for version control staging.
// Duplicates are collapsed.
func (r *Report) Stage(rel string) {
	for _, s := range r.staged {
		if s == rel {
			return
		}
	}
	r.staged = append(r.staged, rel)
}

// Staged returns the paths marked for staging, in first-seen order.
func (r *Report) Staged() []string { return r.staged }

// Changed reports whether the pass mutated the tree.
func (r *Report) Changed() bool {
	return r.DirsCreated > 0 || r.FilesCreated > 0 || r.FilesRepaired > 0 || len(r.staged) > 0
}

// Summary renders a one-line human summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d dirs created, %d files created, %d files repaired, %d rows skipped",
		r.DirsCreated, r.FilesCreated, r.FilesRepaired, len(r.Issues))
}
