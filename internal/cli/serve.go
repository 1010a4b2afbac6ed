package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/komapc/yearwheel/internal/server"
	"github.com/komapc/yearwheel/pkg/cache"
	"github.com/komapc/yearwheel/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	mongoURI string // MongoDB connection string; empty selects memory store
	mongoDB  string // MongoDB database name
	wheelTTL time.Duration // expiry for saved wheels; 0 keeps them forever
	redisAddr string // Redis host:port; empty selects the file cache
	noCache  bool   // disable caching entirely
}

// newServeCmd creates the serve command for running the HTTP API.
//
// Backend selection:
//   - Saved wheels: MongoDB with --mongo, in-memory otherwise
//   - Render cache: Redis with --redis, the local file cache otherwise
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wheel rendering API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for saved wheels (default: in-memory)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "yearwheel", "MongoDB database name")
	cmd.Flags().DurationVar(&opts.wheelTTL, "wheel-ttl", 0, "expire saved wheels after this duration (mongo only)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis host:port for the render cache (default: file cache)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runServe wires the configured backends into the server and runs it until
// the context is canceled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	wheelStore, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer wheelStore.Close(context.Background())

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Store:  wheelStore,
		Cache:  c,
		Logger: logger,
	})
	return srv.ListenAndServe(ctx)
}

func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	default:
		return cache.NewFileCache("")
	}
}

func serveStore(ctx context.Context, opts *serveOpts) (store.WheelStore, error) {
	if opts.mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      opts.mongoURI,
		Database: opts.mongoDB,
		TTL:      opts.wheelTTL,
	})
}
