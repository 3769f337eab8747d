// Package fieldvault is the Composition Root for the Fieldvault application.
//
// Fieldvault automates the folder hierarchies and metadata files of research
// dataset collections spread across nodes, sites and sensor platforms. A
// node summary YAML names each node and its sensor platforms; a per-node CSV
// maps projects to sensors; per-project YAML and CSV files describe sites
// and field days. One synchronous generator pass makes the directory tree
// match that configuration, creating metadata templates where they are
// missing and leaving existing files untouched.
//
// Features:
//
//   - **Idempotent generation**: re-running on a built tree changes nothing.
//   - **Template metadata**: ProjectSummary.yaml and FieldLog.csv are created
//     from templates and repaired when columns go missing.
//   - **Git backed**: every pass stages what it created and records a single
//     Conventional Commit; gitless mode is a flag away.
//   - **Tolerant of bad rows**: malformed configuration rows are reported
//     and skipped, never fatal to the run.
//   - **Watch mode**: an fsnotify worker re-runs the pass when configuration
//     changes.
//
// Usage:
//
//	report, err := fieldvault.Build(ctx, "./data", slog.Default(),
//		fieldvault.WithAutoInit(true),
//	)
package fieldvault
