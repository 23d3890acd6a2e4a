package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/blogdb/pkg/config"
	"github.com/umputun/blogdb/pkg/content"
	"github.com/umputun/blogdb/pkg/feed"
	"github.com/umputun/blogdb/pkg/llm"
	"github.com/umputun/blogdb/pkg/repository"
	"github.com/umputun/blogdb/pkg/scheduler"
	"github.com/umputun/blogdb/pkg/service"
	"github.com/umputun/blogdb/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	DSN    string `long:"dsn" env:"BLOGDB_DSN" description:"database connection string, overrides config"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
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

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)
	lgr.Printf("[INFO] starting blogdb version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires the pipeline and serves the API until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DSN != "" {
		cfg.Database.DSN = opts.DSN
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, secrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	var extractOpts []content.EntryOption
	if cfg.Extraction.Enabled {
		page := content.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent)
		extractOpts = append(extractOpts, content.WithPageExtractor(page, cfg.Extraction.MinTextLength))
	}

	processor := scheduler.NewFeedProcessor(scheduler.FeedProcessorConfig{
		Feeds:                  repos.Feed,
		Articles:               repos.Article,
		Parser:                 feed.NewParser(cfg.Schedule.FetchTimeout, cfg.Extraction.UserAgent),
		Extractor:              content.NewEntryExtractor(extractOpts...),
		Summarizer:             llm.NewSummarizer(llm.NewOpenAIGenerator(cfg.LLM), cfg.LLM.Summary),
		FetchTimeout:           cfg.Schedule.FetchTimeout,
		SummarizeTimeout:       cfg.LLM.Timeout,
		MaxConsecutiveFailures: cfg.Schedule.MaxConsecutiveFailures,
	})

	sched := scheduler.NewScheduler(repos.Feed, processor, scheduler.Config{
		Interval:   cfg.Schedule.Interval,
		MaxWorkers: cfg.Schedule.MaxWorkers,
	})
	recovered, err := sched.RecoverInterrupted(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover interrupted feeds: %w", err)
	}
	if recovered > 0 {
		lgr.Printf("[INFO] recovered %d interrupted feeds", recovered)
	}
	sched.Start(ctx)
	defer sched.Stop()

	feeds := service.NewFeedService(repos.Feed, sched)
	srv := server.New(cfg, server.NewRepositoryAdapter(repos), feeds, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// secrets collects values masked in logs
func secrets(cfg *config.Config) []string {
	var res []string
	if cfg.LLM.APIKey != "" {
		res = append(res, cfg.LLM.APIKey)
	}
	for _, k := range cfg.Server.APIKeys {
		if k != "" {
			res = append(res, k)
		}
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

