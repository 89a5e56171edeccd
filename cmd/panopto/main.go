package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmagar/panopto-cli/internal/api"
	"github.com/jmagar/panopto-cli/internal/config"
	"github.com/jmagar/panopto-cli/internal/extract"
	"github.com/jmagar/panopto-cli/internal/hls"
	"github.com/jmagar/panopto-cli/internal/log"
	"github.com/jmagar/panopto-cli/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseCfg()
	if err != nil {
		ui.PrintError(err.Error())
		return exitUsage
	}

	runID := log.NewRunID()
	log.Configure(log.Config{Level: cfg.LogLevel, RunID: runID})

	apiLog := log.WithComponent("api")
	if cfg.APILogPath != "" {
		l, f, err := api.OpenAPILog(cfg.APILogPath)
		if err != nil {
			ui.PrintWarning(err.Error())
		} else {
			defer f.Close()
			apiLog = l.With().Str("run_id", runID).Logger()
		}
	}

	client := api.NewClient(api.Options{
		UserAgent:         cfg.UserAgent,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RateLimit:         cfg.RateLimit,
		RateBurst:         cfg.RateBurst,
		DegradedThreshold: cfg.DegradedThreshold,
		Logger:            apiLog,
	})

	r := &runner{
		extractor: extract.New(client, log.WithComponent("extract")),
		log:       log.WithComponent("cli"),
	}
	if cfg.ProbeHLS {
		r.prober = &hls.Prober{Fetcher: client, Log: log.WithComponent("hls")}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.run(ctx, cfg)
}
