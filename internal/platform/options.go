package platform

import (
	"log/slog"

	"github.com/aretw0/quill/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterBolt   = "bolt"
	AdapterMemory = "memory"
)

// Adapters lists the built-in adapter names.
var Adapters = []string{AdapterFS, AdapterSQLite, AdapterBolt, AdapterMemory}

// options holds the internal configuration for the note store.
type options struct {
	storage core.Storage
	logger  *slog.Logger
	adapter string
	slot    string
	newID   func() string
	config  map[string]any
}

// Option defines a functional option for configuring quill.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		slot:    core.DefaultSlot,
		config:  make(map[string]any),
	}
}

func (o *options) flag(key string) bool {
	v, _ := o.config[key].(bool)
	return v
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the storage adapter by name: fs, sqlite, bolt or memory.
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithStorage injects a custom storage (e.g. a mock). The adapter option is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithSlot sets the key under which the note collection is stored.
// Defaults to "myData".
func WithSlot(key string) Option {
	return func(o *options) {
		if key != "" {
			o.slot = key
		}
	}
}

// WithIDGenerator replaces the UUID generator of new notes.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithAutoInit creates the vault directory when it is missing.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithMustExist fails initialization when the vault does not exist yet.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithForceTemp re-roots the vault into the temporary dev directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Submissions fail with core.ErrReadOnly and nothing is written.
// 2. Initialization does not create directories, schemas or buckets.
// 3. The dev sandbox is bypassed, so the real vault is read.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
// By default (true) the vault is re-rooted into a temporary directory so a dev
// build never writes into the working tree.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
