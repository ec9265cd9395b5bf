package memoize

import "go.uber.org/zap"

type installMode int

const (
	installInPlace installMode = iota
	installAt
	installNone
)

type config struct {
	normalizer  Normalizer
	store       Store
	storeSet    bool
	install     installMode
	installDest any
	logger      *zap.Logger
}

// Option configures a single Memoize call.
type Option func(*config)

// WithNormalizer replaces the default argument normalizer for this record.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *config) {
		cfg.normalizer = n
	}
}

// WithStore caches through a caller-supplied store instead of the default
// in-memory map. The store is borrowed: the engine only calls Get/Put (and
// Clear when the store supports it), never closes or finalizes it, and leaves
// its contents behind on Unmemoize. Lifecycle and persistence belong to the
// caller.
func WithStore(s Store) Option {
	return func(cfg *config) {
		cfg.store = s
		cfg.storeSet = true
	}
}

// WithInstallAt installs the wrapper into dest, which must be a pointer to
// the same function type as the target, leaving the target's own binding
// untouched. Unmemoize writes the original function into dest.
func WithInstallAt(dest any) Option {
	return func(cfg *config) {
		cfg.install = installAt
		cfg.installDest = dest
	}
}

// WithoutInstall suppresses installation entirely: no binding is written
// anywhere and the wrapper is only returned to the caller.
func WithoutInstall() Option {
	return func(cfg *config) {
		cfg.install = installNone
	}
}

// WithLogger attaches a logger to the record. Lifecycle events (memoize,
// unmemoize, flush) are logged at debug level. The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{install: installInPlace}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.storeSet && cfg.store == nil {
		return cfg, ErrNilStore
	}
	if cfg.normalizer == nil {
		cfg.normalizer = NormalizeArgs
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg, nil
}
