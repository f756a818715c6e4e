package commands

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/arstropica/gif-converter/commands/formatter"
	"github.com/arstropica/gif-converter/internal/client"
	"github.com/arstropica/gif-converter/internal/config"
	"github.com/arstropica/gif-converter/internal/models"
)

// Status fetches and displays a single job snapshot.
func Status(args []string) int {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	jobID := fs.String("job-id", "", "Job ID to query (required)")
	baseURL := fs.String("base-url", "", "API base URL")
	format := fs.String("format", "table", "Output format: table, json, csv")
	configPath := fs.String("config", "", "Config file path")
	_ = fs.Parse(args)

	if *jobID == "" && fs.NArg() > 0 {
		*jobID = fs.Arg(0)
	}
	if *jobID == "" {
		slog.Error("job ID is required")
		slog.Info("Usage: gif-converter status --job-id <id>")
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

	api := client.New(*baseURL)
	job, err := api.GetJob(context.Background(), *jobID)
	if err != nil {
		slog.Error("Error fetching job from server", "job_id", *jobID, "error", err)
		slog.Info(fmt.Sprintf("Make sure the gif-converter service is running at %s", api.BaseURL()))
		return ExitFailure
	}

	out := formatter.New(os.Stdout, formatter.ParseFormat(*format))
	headers, row := jobToRow(job)
	if err := out.Print(headers, [][]string{row}, job); err != nil {
		slog.Error("Failed to render job", "error", err)
		return ExitFailure
	}
	return ExitSuccess
}

func jobToRow(job *models.Job) ([]string, []string) {
	headers := []string{"ID", "Status", "Progress", "Pass", "Original", "Converted", "Dimensions", "Error"}

	pass := "-"
	if job.CurrentPass > 0 {
		pass = fmt.Sprint(job.CurrentPass)
	}
	original, converted := "-", "-"
	if job.OriginalSize > 0 {
		original = formatter.HumanBytes(job.OriginalSize)
	}
	if job.ConvertedSize > 0 {
		converted = formatter.HumanBytes(job.ConvertedSize)
	}

	row := []string{
		job.ID,
		job.Status.Label(),
		fmt.Sprintf("%d%%", job.Progress),
		pass,
		original,
		converted,
		formatDimensions(job),
		job.ErrorMessage,
	}
	return headers, row
}
