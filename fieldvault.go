package fieldvault

import (
	"context"
	"log/slog"

	"github.com/aretw0/fieldvault/pkg/core"
	fv "github.com/aretw0/fieldvault/pkg/fieldvault"
)

// --- Types ---

// Vault is a public alias for the dataset vault.
type Vault = fv.Vault

// Builder is a public alias for the generator.
type Builder = fv.Builder

// Watcher is a public alias for the rebuild-on-change worker.
type Watcher = fv.Watcher

// Report is a public alias for the generator run report.
type Report = core.Report

// Node is a public alias for the node definition.
type Node = core.Node

// ProjectSummary is a public alias for the project metadata document.
type ProjectSummary = fv.ProjectSummary

// DefaultNodeFile is the vault-relative node summary filename.
const DefaultNodeFile = fv.DefaultNodeFile

// --- Configuration ---

// Option defines a functional option for configuring the vault and builder.
type Option = fv.Option

// WithGitless disables all version control integration.
func WithGitless(gitless bool) Option {
	return fv.WithGitless(gitless)
}

// WithAutoInit enables automatic initialization of the vault (creates directory and git init).
func WithAutoInit(auto bool) Option {
	return fv.WithAutoInit(auto)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return fv.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return fv.WithForceTemp(force)
}

// WithHistorical allows field log dates older than the default window.
func WithHistorical(historical bool) Option {
	return fv.WithHistorical(historical)
}

// WithPush controls whether a successful build pushes its commit.
func WithPush(push bool) Option {
	return fv.WithPush(push)
}

// WithNodeFile overrides the vault-relative path of the node summary YAML.
func WithNodeFile(path string) Option {
	return fv.WithNodeFile(path)
}

// WithLogger sets the logger for the vault and builder.
func WithLogger(logger *slog.Logger) Option {
	return fv.WithLogger(logger)
}

// --- Factory ---

// Open opens (or creates, with WithAutoInit) a vault rooted at path.
func Open(path string, logger *slog.Logger, opts ...Option) (*Vault, error) {
	return fv.NewVault(path, logger, opts...)
}

// NewBuilder creates a generator for an open vault.
func NewBuilder(v *Vault, opts ...Option) *Builder {
	return fv.NewBuilder(v, opts...)
}

// --- Operations ---

// Build opens the vault at path and runs one generator pass.
func Build(ctx context.Context, path string, logger *slog.Logger, opts ...Option) (*Report, error) {
	vault, err := Open(path, logger, opts...)
	if err != nil {
		return nil, err
	}
	return fv.NewBuilder(vault, opts...).Build(ctx)
}

// Validate opens the vault at path and runs the checks without writing.
func Validate(ctx context.Context, path string, logger *slog.Logger, opts ...Option) (*Report, error) {
	vault, err := Open(path, logger, opts...)
	if err != nil {
		return nil, err
	}
	return fv.NewBuilder(vault, opts...).Validate(ctx)
}

// Sync performs a synchronization (pull/push) of the vault.
func Sync(path string, logger *slog.Logger, opts ...Option) error {
	vault, err := Open(path, logger, append(opts, fv.WithMustExist(true))...)
	if err != nil {
		return err
	}
	return vault.Sync()
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return fv.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return fv.IsDevRun()
}

// --- Semantic Commits ---

const (
	CommitTypeFeat     = fv.CommitTypeFeat
	CommitTypeFix      = fv.CommitTypeFix
	CommitTypeDocs     = fv.CommitTypeDocs
	CommitTypeStyle    = fv.CommitTypeStyle
	CommitTypeRefactor = fv.CommitTypeRefactor
	CommitTypePerf     = fv.CommitTypePerf
	CommitTypeTest     = fv.CommitTypeTest
	CommitTypeChore    = fv.CommitTypeChore
)

// FormatCommitMessage builds a Conventional Commit message.
func FormatCommitMessage(ctype, scope, subject, body string) string {
	return fv.FormatCommitMessage(ctype, scope, subject, body)
}

// AppendFooter appends the Fieldvault footer to an arbitrary message.
func AppendFooter(msg string) string {
	return fv.AppendFooter(msg)
}
