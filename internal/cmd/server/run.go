package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/sifthq/minthook/internal/config"
	"github.com/sifthq/minthook/internal/runtime"
	httpserver "github.com/sifthq/minthook/internal/server/http"
	pebblestore "github.com/sifthq/minthook/internal/storage/pebble"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

// Options configure one server process.
type Options struct {
	DataDir  string
	HTTPAddr string
	Fsync    pebblestore.FsyncMode
	Config   cfgpkg.Config
}

// Run starts the HTTP server and worker pool and blocks until ctx is
// cancelled or a termination signal arrives.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers that
	// don't pass a signal-aware context still get clean shutdown.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	storeDir := filepath.Join(opts.DataDir, "store")

	logCfg := &logpkg.Config{
		Level:  getenvDefault("MINTHOOK_LOG_LEVEL", opts.Config.Log.Level),
		Format: getenvDefault("MINTHOOK_LOG_FORMAT", opts.Config.Log.Format),
	}
	procLogger, err := logpkg.ApplyConfig(logCfg)
	if err != nil {
		procLogger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel))
	}
	// Redirect stdlib logs (e.g. Pebble) to our logger.
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{
		DataDir: storeDir,
		Fsync:   opts.Fsync,
		Config:  opts.Config,
		Logger:  procLogger,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("starting minthook server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Int("workers", opts.Config.Workers),
		logpkg.Int("dedup_window_sec", opts.Config.DedupWindowSec),
		logpkg.Str("level", logCfg.Level),
		logpkg.Str("format", logCfg.Format),
	)

	rt.StartWorkers()

	hsrv := httpserver.New(rt, procLogger)
	g, gctx := errgroup.WithContext(sctx)
	g.Go(func() error {
		return hsrv.ListenAndServe(gctx, opts.HTTPAddr)
	})

	<-gctx.Done()
	// Stop accepting traffic before draining the workers and closing storage.
	hsrv.Close()
	err = g.Wait()
	if sctx.Err() != nil {
		return nil
	}
	return err
}
