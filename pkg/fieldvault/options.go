package fieldvault

import (
	"log/slog"
	"time"
)

// options holds the internal configuration shared by Vault and Builder.
type options struct {
	gitless    bool
	autoInit   bool
	mustExist  bool
	forceTemp  bool
	historical bool
	push       bool
	nodeFile   string
	logger     *slog.Logger
	now        func() time.Time
}

// Option defines a functional option for configuring the vault and builder.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		push:     true,
		nodeFile: DefaultNodeFile,
		now:      time.Now,
	}
}

// WithGitless disables all version control integration.
func WithGitless(gitless bool) Option {
	return func(o *options) {
		o.gitless = gitless
	}
}

// WithAutoInit enables automatic initialization of the vault (creates directory and git init).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithHistorical allows field log dates older than the default window.
func WithHistorical(historical bool) Option {
	return func(o *options) {
		o.historical = historical
	}
}

// WithPush controls whether a successful build pushes its commit.
// Enabled by default; has no effect in gitless mode.
func WithPush(push bool) Option {
	return func(o *options) {
		o.push = push
	}
}

// WithNodeFile overrides the vault-relative path of the node summary YAML.
func WithNodeFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.nodeFile = path
		}
	}
}

// WithLogger sets the logger for the vault and builder.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNow injects the clock used for the field log date window.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
