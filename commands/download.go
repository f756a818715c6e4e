package commands

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/arstropica/gif-converter/internal/client"
	"github.com/arstropica/gif-converter/internal/config"
	"github.com/arstropica/gif-converter/internal/history"
	"github.com/arstropica/gif-converter/internal/progress"
)

// Download retrieves the result artifact of a previously submitted job.
func Download(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	jobID := fs.String("job-id", "", "Job ID to download (required)")
	output := fs.String("o", "", "Output file path")
	fs.StringVar(output, "output", "", "Output file path")
	baseURL := fs.String("base-url", "", "API base URL")
	noProgress := fs.Bool("no-progress", false, "Disable progress output")
	configPath := fs.String("config", "", "Config file path")
	_ = fs.Parse(args)

	if *jobID == "" && fs.NArg() > 0 {
		*jobID = fs.Arg(0)
	}
	if *jobID == "" {
		slog.Error("job ID is required")
		slog.Info("Usage: gif-converter download --job-id <id> [-o path]")
		return ExitFailure
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return ExitFailure
	}
	if *baseURL == "" {
		*baseURL = cfg.Server.BaseURL
	}

	outPath := *output
	if outPath == "" {
		outPath = historyOutputPath(cfg, *jobID)
	}
	if outPath == "" {
		outPath = *jobID + ".gif"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*baseURL)
	printer := progress.New(os.Stdout, !*noProgress)
	return fetchResult(ctx, api, *jobID, outPath, printer)
}

// historyOutputPath derives a destination from the locally recorded
// submission, when one exists.
func historyOutputPath(cfg *config.Config, jobID string) string {
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" || cfg.History.Disabled {
		return ""
	}

	tracker, err := history.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = tracker.Close() }()

	rec, err := tracker.Get(jobID)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			slog.Warn("Failed to look up job in history", "job_id", jobID, "error", err)
		}
		return ""
	}
	if rec.OutputPath != "" {
		return rec.OutputPath
	}
	if rec.SourcePath != "" {
		return defaultOutputPath(rec.SourcePath)
	}
	return ""
}
