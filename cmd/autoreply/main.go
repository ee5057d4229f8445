package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/autoreply/pkg/config"
	"github.com/umputun/autoreply/pkg/dispatch"
	"github.com/umputun/autoreply/pkg/metrics"
	"github.com/umputun/autoreply/pkg/platform"
	"github.com/umputun/autoreply/pkg/poller"
	"github.com/umputun/autoreply/pkg/processor"
	"github.com/umputun/autoreply/pkg/repository"
	"github.com/umputun/autoreply/pkg/store"
	"github.com/umputun/autoreply/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting autoreply version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	SetupLog(opts.Debug, opts.NoColor, cfg.Platform.AccessToken, cfg.Platform.AppSecret, cfg.Platform.VerifyToken,
		cfg.Store.Redis.Password)

	// rules store, redis primary is optional
	local, err := store.NewFileBackend(cfg.Store.LocalDir)
	if err != nil {
		return fmt.Errorf("failed to init local store: %w", err)
	}
	var primary store.Backend
	if cfg.Store.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, pingCancel := context.WithTimeout(ctx, cfg.Store.Redis.Timeout)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("[WARN] redis %s is not reachable, local store will be used until it is: %v", cfg.Store.Redis.Addr, err)
		}
		pingCancel()
		primary = store.NewRedisBackend(rdb, cfg.Store.Redis.KeyPrefix, cfg.Store.Redis.Timeout)
	}
	rulesStore := store.New(primary, local)

	// history ledger
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:          cfg.History.DSN,
		MaxOpenConns: cfg.History.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("failed to init history: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close history: %v", err)
		}
	}()

	client := platform.New(platform.Params{
		BaseURL:     cfg.Platform.GraphURL,
		AccessToken: cfg.Platform.AccessToken,
		UserID:      cfg.Platform.UserID,
		Timeout:     cfg.Platform.Timeout,
	})

	dispatcher := dispatch.New(client, dispatch.Params{
		ReplyDelay:    cfg.Dispatch.ReplyDelay,
		DMDelay:       cfg.Dispatch.DMDelay,
		MaxConcurrent: cfg.Dispatch.MaxConcurrent,
		CallTimeout:   cfg.Platform.Timeout,
	})

	proc := processor.New(rulesStore, repos.History, dispatcher, processor.Params{
		SelfUserID:   cfg.Platform.UserID,
		SelfUsername: cfg.Platform.Username,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(registry)

	srv := server.New(server.Deps{
		Config:    cfg,
		Rules:     rulesStore,
		History:   repos.History,
		Processor: proc,
		Media:     client,
		DB:        repos,
		Gatherer:  registry,
	}, revision, opts.Debug)

	var pl *poller.Poller
	if cfg.Poll.Enabled {
		pl = poller.New(client, rulesStore, proc, poller.Config{Interval: cfg.Poll.Interval, MaxPosts: cfg.Poll.MaxPosts})
		pl.Start(ctx)
	}

	return serve(ctx, srv, pl, dispatcher, cfg.Dispatch.DrainTimeout)
}

type runner interface {
	Run(ctx context.Context) error
}

// serve blocks until the server is down, then drains the dispatcher. Webhooks still in flight
// during server shutdown can schedule their replies.
func serve(ctx context.Context, srv runner, pl *poller.Poller, dispatcher *dispatch.Dispatcher, drainTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if pl != nil {
		g.Go(func() error {
			<-gctx.Done()
			pl.Stop()
			return nil
		})
	}
	err := g.Wait()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), drainTimeout)
	defer drainCancel()
	st := time.Now()
	if derr := dispatcher.Shutdown(drainCtx); derr != nil {
		log.Printf("[WARN] dispatcher drain incomplete after %v: %v", time.Since(st).Round(time.Millisecond), derr)
	}
	return err
}

// SetupLog configures lgr and std logger, secrets are masked in the output
func SetupLog(dbg, noColor bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	// empty secret would mask everything
	nonEmpty := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

// discardLog silences logging, used by tests
func discardLog() {
	lgr.Setup(lgr.Out(io.Discard), lgr.Err(io.Discard))
}
