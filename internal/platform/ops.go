package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/quill/pkg/adapters/bolt"
	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/adapters/sqlite"
	"github.com/aretw0/quill/pkg/core"
)

// Init opens and initializes the storage selected by the options.
// The uri is adapter-specific: the vault directory for fs, sqlite and bolt
// (":memory:" is accepted by sqlite), ignored by memory.
func Init(uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStorage(context.Background(), uri, o)
}

func initStorage(ctx context.Context, uri string, o *options) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	var s core.Storage
	switch o.adapter {
	case AdapterMemory:
		s = memory.New(memory.WithReadOnly(o.flag("read_only")))
	case AdapterFS:
		errorHandler, _ := o.config["watcher_error_handler"].(func(error))
		s = fs.NewStorage(fs.Config{
			Path:         resolvePath(uri, o, logger),
			AutoInit:     o.flag("auto_init") || o.useTemp(),
			MustExist:    o.flag("must_exist"),
			ReadOnly:     o.flag("read_only"),
			Logger:       logger,
			ErrorHandler: errorHandler,
		})
	case AdapterSQLite:
		path := uri
		if uri != sqlite.MemoryPath {
			path = resolvePath(uri, o, logger)
		}
		s = sqlite.NewStorage(sqlite.Config{
			Path:      path,
			MustExist: o.flag("must_exist") || !(o.flag("auto_init") || o.useTemp()),
			ReadOnly:  o.flag("read_only"),
			Logger:    logger,
		})
	case AdapterBolt:
		s = bolt.NewStorage(bolt.Config{
			Path:      resolvePath(uri, o, logger),
			MustExist: o.flag("must_exist") || !(o.flag("auto_init") || o.useTemp()),
			ReadOnly:  o.flag("read_only"),
			Logger:    logger,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// useTemp reports whether the dev sandbox applies. Read-only vaults and an
// explicit WithDevSafety(false) bypass it.
func (o *options) useTemp() bool {
	if o.flag("temp_dir") {
		return true
	}
	devSafety := true
	if v, ok := o.config["dev_safety"].(bool); ok {
		devSafety = v
	}
	return IsDevRun() && devSafety && !o.flag("read_only")
}

func resolvePath(uri string, o *options, logger *slog.Logger) string {
	useTemp := o.useTemp()
	resolved := ResolveVaultPath(uri, useTemp)

	if IsDevRun() {
		switch {
		case useTemp:
			logger.Debug("running in SAFE mode (dev sandbox enabled)", "original_path", uri, "resolved_path", resolved)
		case o.flag("read_only"):
			logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		default:
			logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	return resolved
}
