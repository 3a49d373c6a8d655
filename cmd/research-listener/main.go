package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/demajh/research-listener/pkg/config"
	"github.com/demajh/research-listener/pkg/domain"
	"github.com/demajh/research-listener/pkg/feed"
	"github.com/demajh/research-listener/pkg/llm"
	"github.com/demajh/research-listener/pkg/mailer"
	"github.com/demajh/research-listener/pkg/relevance"
	"github.com/demajh/research-listener/pkg/report"
	"github.com/demajh/research-listener/pkg/repository"
	"github.com/demajh/research-listener/pkg/scheduler"
	"github.com/demajh/research-listener/pkg/summary"
	"github.com/demajh/research-listener/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"research-listener.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file with secrets, optional"`
	Once    bool   `long:"once" description:"run the digest job once and exit"`

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
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting research-listener version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
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

// app holds the wired components
type app struct {
	repos     *repository.Repositories
	renderer  *report.Renderer
	scheduler *scheduler.Scheduler
}

func run(ctx context.Context, opts Opts) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// secrets are known only after config is loaded
	setupLog(opts.Debug, opts.NoColor, cfg.Secrets()...)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if opts.Once {
		rep, err := a.scheduler.RunNow(ctx)
		logReport(rep)
		if err != nil {
			return fmt.Errorf("digest run failed: %w", err)
		}
		return nil
	}

	// stop also waits for runs triggered from the api
	defer a.scheduler.Stop()
	if cfg.Schedule.Enabled {
		a.scheduler.Start(ctx)
	} else {
		lgr.Printf("[INFO] daily schedule disabled, runs are started from the api only")
	}

	srv := server.New(cfg, server.NewRepositoryAdapter(a.repos), a.scheduler, a.renderer, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newApp creates all pipeline components from the configuration
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to initialize report renderer: %w", err)
	}

	fetcher := feed.NewClient(feed.Params{
		Endpoint:   cfg.Feed.Endpoint,
		Timeout:    cfg.Feed.Timeout,
		UserAgent:  cfg.Feed.UserAgent,
		MaxResults: cfg.Feed.MaxResults,
		Retries:    cfg.Feed.Retries,
	})

	// both relevance and summary degrade to local strategies without the llm backend
	var llmClient *llm.Client
	if cfg.SemanticEnabled() {
		llmClient = llm.NewClient(cfg.LLM)
	} else {
		lgr.Printf("[INFO] llm api key is not set, semantic features disabled")
	}

	filter := relevance.New(cfg.SemanticEnabled(), embedder(llmClient), relevance.Options{
		TopK:          cfg.Relevance.TopK,
		Threshold:     cfg.Relevance.Threshold,
		AbstractLimit: cfg.Relevance.AbstractLimit,
		BatchSize:     cfg.Relevance.BatchSize,
	})
	summarizer := summary.New(cfg.SemanticEnabled(), generator(llmClient), summary.Options{
		Sentences:  cfg.Summary.Sentences,
		MaxAuthors: cfg.Summary.MaxAuthors,
	})

	deliverer := mailer.New(cfg.SMTP, renderer)

	driver := scheduler.NewDriver(scheduler.DriverParams{
		Fetcher:    fetcher,
		Filter:     filter,
		Summarizer: summarizer,
		Writer:     report.NewWriter(cfg.Report.Dir, renderer),
		Deliverer:  deliverer,
		Archive:    repos.Digest,
		MaxResults: cfg.Feed.MaxResults,
		WindowDays: cfg.Feed.WindowDays,
	})

	sched, err := scheduler.NewScheduler(repos.Subscription, driver, scheduler.Config{DailyAt: cfg.Schedule.DailyAt})
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return &app{repos: repos, renderer: renderer, scheduler: sched}, nil
}

// embedder avoids passing a typed nil client as interface
func embedder(c *llm.Client) relevance.Embedder {
	if c == nil {
		return nil
	}
	return c
}

func generator(c *llm.Client) summary.Generator {
	if c == nil {
		return nil
	}
	return c
}

func logReport(rep domain.RunReport) {
	if rep.ID == "" {
		return
	}
	lgr.Printf("[INFO] run %s: %d sent, %d skipped, %d failed", rep.ID,
		rep.Count(domain.RunStatusSent), rep.Count(domain.RunStatusSkipped), rep.Count(domain.RunStatusFailed))
	for _, res := range rep.Results {
		if res.Status == domain.RunStatusFailed {
			lgr.Printf("[WARN] %s (%s): %s", res.Email, res.Channel, res.Error)
		}
	}
}

func setupLog(dbg, noColor bool, secs ...string) {
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
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
