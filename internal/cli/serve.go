package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nakamurapomeo/collage-app/internal/server"
	"github.com/nakamurapomeo/collage-app/pkg/cache"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
	"github.com/nakamurapomeo/collage-app/pkg/store"
)

// Store and cache backend names for the serve command.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"

	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// defaultAddr is the default listen address for the HTTP API.
const defaultAddr = ":8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address (host:port)
	storeKind string // album store backend: "memory" or "mongo"
	mongoURI  string // MongoDB connection string (mongo store)
	cacheKind string // layout cache backend: "file", "redis", or "none"
	redisAddr string // Redis address (redis cache)
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes album CRUD and layout packing over HTTP:

  POST /api/v1/layout                  pack an ad-hoc item list
  GET  /api/v1/albums                  list stored albums
  POST /api/v1/albums                  create an album
  GET  /api/v1/albums/{id}             fetch an album
  PUT  /api/v1/albums/{id}             replace an album
  DELETE /api/v1/albums/{id}           delete an album
  GET  /api/v1/albums/{id}/layout      pack a stored album

Albums live in memory by default; pass --store mongo for persistence.
Layouts and artifacts are cached on disk by default; pass --cache redis
to share the cache between instances, or --cache none to disable it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyServeConfig(cmd, &opts, cfg.Server)
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", storeMemory, "album store backend: memory (default), mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", cacheFile, "layout cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "Redis address")

	return cmd
}

// applyServeConfig copies server defaults from the config into opts for
// every flag the user did not set explicitly.
func applyServeConfig(cmd *cobra.Command, opts *serveOpts, cfg ServerConfig) {
	if cfg.Addr != "" && !cmd.Flags().Changed("addr") {
		opts.addr = cfg.Addr
	}
	if cfg.Store != "" && !cmd.Flags().Changed("store") {
		opts.storeKind = cfg.Store
	}
	if cfg.MongoURI != "" && !cmd.Flags().Changed("mongo-uri") {
		opts.mongoURI = cfg.MongoURI
	}
	if cfg.Cache != "" && !cmd.Flags().Changed("cache") {
		opts.cacheKind = cfg.Cache
	}
	if cfg.RedisAddr != "" && !cmd.Flags().Changed("redis-addr") {
		opts.redisAddr = cfg.RedisAddr
	}
}

// runServe builds the store, cache, and runner, then serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	st, err := newServeStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	ca, err := newServeCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(ca, nil, c.Logger)
	runner.Prober = newProber(opts.cacheKind == cacheNone)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Store:  st,
		Runner: runner,
		Logger: c.Logger,
	})

	c.Logger.Info("starting server", "addr", opts.addr, "store", opts.storeKind, "cache", opts.cacheKind)
	return srv.Start(ctx)
}

func newServeStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case storeMemory:
		return store.NewMemoryStore(), nil
	case storeMongo:
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory' or 'mongo')", opts.storeKind)
	}
}

func newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case cacheRedis:
		ca, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return ca, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", opts.cacheKind)
	}
}
