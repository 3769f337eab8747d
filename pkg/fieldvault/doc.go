// Package fieldvault implements the research dataset folder generator.
//
// A vault is a directory (usually a Git repository) holding one folder per
// data-collection node. Each node folder carries a projects-summary table (a CSV
// of project names against sensor platform flags), and each project folder
// carries a ProjectSummary.yaml metadata template plus a FieldLog.csv of
// collection days. The Builder reads those files and makes the directory
// tree match them: project folders, flagged sensor subfolders, site folders,
// and per-run tier folders for every valid field log row.
//
// The pass is single-threaded and idempotent. Existing metadata files are
// never rewritten; missing ones are created from templates. Malformed rows
// are reported into a Report and skipped, never fatal.
//
// Usage:
//
//	vault, err := fieldvault.NewVault("./data", slog.Default())
//	builder := fieldvault.NewBuilder(vault, fieldvault.WithHistorical(true))
//	report, err := builder.Build(ctx)
package fieldvault
