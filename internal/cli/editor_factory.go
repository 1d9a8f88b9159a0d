package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/internal/config"
	"github.com/aretw0/turbo-editor/pkg/adapters/file"
	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/adapters/process"
	"github.com/aretw0/turbo-editor/pkg/adapters/redis"
	"github.com/aretw0/turbo-editor/pkg/observability"
	"github.com/aretw0/turbo-editor/pkg/persistence/middleware"
	"github.com/aretw0/turbo-editor/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// CloseFunc releases what NewEditor opened.
type CloseFunc func() error

// NewEditor initializes an Editor from cfg with standard CLI conventions:
// the configured store backend, persistence middleware, template library,
// property schemas and debug logging hooks. extra options apply last.
func NewEditor(cfg config.Config, logger *slog.Logger, extra ...editor.Option) (*editor.Editor, CloseFunc, error) {
	closeFn := CloseFunc(func() error { return nil })
	opts := []editor.Option{editor.WithLogger(logger)}

	// 1. Store backend
	var store ports.SceneStore
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(cfg.Store.Dir)
	case config.BackendRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		prefix := cfg.Store.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store = redis.NewFromClient(client, redis.WithPrefix(prefix), redis.WithTTL(cfg.Store.Redis.TTL))
		opts = append(opts, editor.WithLocker(redis.NewLocker(client, prefix), cfg.Store.LockTTL))
		closeFn = client.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	opts = append(opts, editor.WithStore(store))

	// 2. Middleware, outermost first. Encryption is innermost so the
	// other layers see plain scenes.
	mws := []middleware.Middleware{}
	if len(cfg.Store.Transient) > 0 {
		mws = append(mws, middleware.NewTransientMiddleware(cfg.Store.Transient))
	}
	mws = append(mws, middleware.NewValidationMiddleware())
	key, err := cfg.EncryptionKey()
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	if key != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	opts = append(opts, editor.WithMiddleware(mws...))

	// 3. Templates, schemas, generator
	if cfg.Templates != "" {
		opts = append(opts, editor.WithTemplateDir(cfg.Templates))
	}
	schemas, err := cfg.SchemaSet()
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	opts = append(opts, editor.WithSchemas(schemas))
	if cfg.IndentWidth > 0 {
		opts = append(opts, editor.WithIndentWidth(cfg.IndentWidth))
	}

	// 4. Hooks
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, editor.WithLifecycleHooks(observability.LogHooks(logger)))
	}

	ed, err := editor.New(append(opts, extra...)...)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("error initializing editor: %w", err)
	}
	return ed, closeFn, nil
}

// NewPipes loads the allow-listed commands named by cfg.Tools.
// Without a tools file the runner is empty.
func NewPipes(cfg config.Config) (*process.Runner, error) {
	if cfg.Tools == "" {
		return process.NewRunner(), nil
	}
	tools, err := process.LoadTools(cfg.Tools)
	if err != nil {
		return nil, err
	}
	return process.NewRunner(process.WithRegistry(tools), process.WithBaseDir(filepath.Dir(cfg.Tools))), nil
}
