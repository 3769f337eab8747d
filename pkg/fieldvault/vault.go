package fieldvault

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/fieldvault/pkg/git"

	"github.com/aretw0/fieldvault/pkg/core"
)

// Vault represents a directory holding research dataset trees, optionally
// backed by Git.
type Vault struct {
	Path    string
	Git     *git.Client
	Logger  *slog.Logger
	gitless bool
}

// NewVault opens (or creates, with WithAutoInit) a vault rooted at path.
func NewVault(path string, logger *slog.Logger, opts ...Option) (*Vault, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger != nil {
		logger = o.logger
	}

	path = ResolveVaultPath(path, o.forceTemp)

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if o.mustExist || !o.autoInit {
			return nil, fmt.Errorf("vault path does not exist: %s", path)
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create vault directory: %w", err)
		}
	case err != nil:
		return nil, err
	case !info.IsDir():
		return nil, fmt.Errorf("vault path is not a directory: %s", path)
	}

	v := &Vault{
		Path:    path,
		Git:     git.NewClient(path, logger),
		Logger:  logger,
		gitless: o.gitless,
	}

	if !o.gitless {
		if !git.IsInstalled() {
			return nil, fmt.Errorf("git is not installed")
		}
		if !v.Git.IsRepo() {
			if !o.autoInit {
				return nil, fmt.Errorf("vault path is not a git repository: %s (run 'fieldvault init' or use --no-git)", path)
			}
			if err := v.Git.Init(); err != nil {
				return nil, fmt.Errorf("failed to git init: %w", err)
			}
		}
	}

	return v, nil
}

// Gitless reports whether version control is disabled for this vault.
func (v *Vault) Gitless() bool { return v.gitless }

// Abs converts a vault-relative path to an absolute one.
func (v *Vault) Abs(rel string) string {
	return filepath.Join(v.Path, rel)
}

// EnsureDir creates a vault-relative directory (and parents) when missing.
func (v *Vault) EnsureDir(rel string) (created bool, err error) {
	full := v.Abs(rel)
	if _, err := os.Stat(full); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.MkdirAll(full, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", rel, err)
	}
	if v.Logger != nil {
		v.Logger.Info("created directory", "path", rel)
	}
	return true, nil
}

// TouchFile creates an empty vault-relative file when missing.
func (v *Vault) TouchFile(rel string) (created bool, err error) {
	full := v.Abs(rel)
	if _, err := os.Stat(full); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to create file %s: %w", rel, err)
	}
	f.Close()
	if v.Logger != nil {
		v.Logger.Info("created file", "path", rel)
	}
	return true, nil
}

// Pull integrates remote changes before a build. A vault without a remote
// is left alone.
func (v *Vault) Pull() error {
	if v.gitless || !v.Git.HasRemote() {
		return nil
	}

	unlock, err := v.Git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := v.Git.Pull(); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	return nil
}

// CommitReport stages everything the report touched and records a single
// commit. No-op in gitless mode or when nothing was staged.
func (v *Vault) CommitReport(report *core.Report, msg string) error {
	if v.gitless || len(report.Staged()) == 0 {
		return nil
	}

	unlock, err := v.Git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := v.Git.Add(report.Staged()...); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}
	if err := v.Git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// Push publishes local commits. A vault without a remote is left alone.
func (v *Vault) Push() error {
	if v.gitless || !v.Git.HasRemote() {
		return nil
	}

	unlock, err := v.Git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := v.Git.Push(); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	return nil
}

// Sync synchronizes the vault with the remote repository.
func (v *Vault) Sync() error {
	if v.gitless {
		return fmt.Errorf("cannot sync in gitless mode")
	}

	if v.Logger != nil {
		v.Logger.Info("syncing vault with remote")
	}

	unlock, err := v.Git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer unlock()

	if !v.Git.HasRemote() {
		return fmt.Errorf("remote 'origin' not configured")
	}

	if err := v.Git.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if v.Logger != nil {
		v.Logger.Info("sync completed successfully")
	}
	return nil
}
