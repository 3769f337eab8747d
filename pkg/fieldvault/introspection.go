package fieldvault

import (
	"time"

	"github.com/aretw0/introspection"
)

// VaultState exposes internal state for observability.
type VaultState struct {
	Path    string `json:"path"`
	Gitless bool   `json:"gitless"`
}

// State implements introspection.Introspectable.
func (v *Vault) State() any {
	return VaultState{
		Path:    v.Path,
		Gitless: v.gitless,
	}
}

// ComponentType implements introspection.Component.
func (v *Vault) ComponentType() string {
	return "vault"
}

var _ introspection.Introspectable = (*Vault)(nil)
var _ introspection.Component = (*Vault)(nil)

// BuilderState exposes internal state for observability.
type BuilderState struct {
	NodeFile   string     `json:"node_file"`
	Historical bool       `json:"historical"`
	LastBuild  *time.Time `json:"last_build,omitempty"`
	LastResult string     `json:"last_result,omitempty"`
}

// State implements introspection.Introspectable.
func (b *Builder) State() any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BuilderState{
		NodeFile:   b.nodeFile,
		Historical: b.historical,
		LastBuild:  b.lastBuild,
		LastResult: b.lastResult,
	}
}

// ComponentType implements introspection.Component.
func (b *Builder) ComponentType() string {
	return "builder"
}

var _ introspection.Introspectable = (*Builder)(nil)
var _ introspection.Component = (*Builder)(nil)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Active   bool          `json:"active"`
	Debounce time.Duration `json:"debounce"`
	Patterns []string      `json:"patterns"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	return WatcherState{
		Active:   w.active,
		Debounce: w.debounce,
		Patterns: w.triggerPatterns(),
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
