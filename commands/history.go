package commands

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/arstropica/gif-converter/commands/formatter"
	"github.com/arstropica/gif-converter/internal/config"
	"github.com/arstropica/gif-converter/internal/history"
)

// History lists locally recorded submissions, newest first.
func History(args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Maximum number of entries to display")
	format := fs.String("format", "table", "Output format: table, json, csv")
	configPath := fs.String("config", "", "Config file path")
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return ExitFailure
	}
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" || cfg.History.Disabled {
		slog.Error("Submission history is disabled")
		return ExitFailure
	}

	tracker, err := history.Open(path)
	if err != nil {
		slog.Error("Failed to open history database", "path", path, "error", err)
		return ExitFailure
	}
	defer func() { _ = tracker.Close() }()

	records, err := tracker.Recent(*limit)
	if err != nil {
		slog.Error("Failed to read history", "error", err)
		return ExitFailure
	}
	if len(records) == 0 {
		slog.Info("No recorded submissions")
		return ExitSuccess
	}

	headers, rows := historyToTable(records)
	out := formatter.New(os.Stdout, formatter.ParseFormat(*format))
	if err := out.Print(headers, rows, records); err != nil {
		slog.Error("Failed to render history", "error", err)
		return ExitFailure
	}
	return ExitSuccess
}

func historyToTable(records []history.Record) ([]string, [][]string) {
	headers := []string{"Job ID", "Status", "Source", "Output", "Size", "Created"}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		size := "-"
		if rec.ConvertedSize > 0 {
			size = formatter.HumanBytes(rec.ConvertedSize)
		}
		output := rec.OutputPath
		if output == "" {
			output = "-"
		}
		rows = append(rows, []string{
			truncate(rec.JobID, 16),
			rec.Status,
			truncate(rec.SourcePath, 40),
			truncate(output, 40),
			size,
			rec.CreatedAt.Format(time.DateTime),
		})
	}
	return headers, rows
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
