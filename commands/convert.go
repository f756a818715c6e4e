package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/arstropica/gif-converter/commands/formatter"
	"github.com/arstropica/gif-converter/internal/client"
	"github.com/arstropica/gif-converter/internal/config"
	"github.com/arstropica/gif-converter/internal/history"
	"github.com/arstropica/gif-converter/internal/logger"
	"github.com/arstropica/gif-converter/internal/models"
	"github.com/arstropica/gif-converter/internal/progress"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitAborted = 130
)

type convertFlags struct {
	output     string
	urlOnly    bool
	baseURL    string
	width      int
	height     int
	rotate     int
	inputFPS   float64
	outputFPS  float64
	interpFPS  float64
	bgColor    string
	bgImage    string
	compress   bool
	noProgress bool
	timeout    int
	configPath string
	noHistory  bool
}

// Convert submits a file for conversion, waits for the job to finish and
// retrieves the result.
func Convert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var f convertFlags
	fs.StringVar(&f.output, "o", "", "Output file path")
	fs.StringVar(&f.output, "output", "", "Output file path")
	fs.BoolVar(&f.urlOnly, "url-only", false, "Print download URL instead of downloading")
	fs.StringVar(&f.baseURL, "base-url", "", "API base URL")
	fs.IntVar(&f.width, "width", 0, "Output width (auto if not set)")
	fs.IntVar(&f.height, "height", 0, "Output height (auto if not set)")
	fs.IntVar(&f.rotate, "rotate", 0, "Rotation in degrees clockwise: 0, 90, 180, 270")
	fs.Float64Var(&f.inputFPS, "input-fps", 0, "Override input frame rate")
	fs.Float64Var(&f.outputFPS, "fps", 0, "Output frame rate")
	fs.Float64Var(&f.outputFPS, "output-fps", 0, "Output frame rate")
	fs.Float64Var(&f.interpFPS, "interpolate", 0, "Motion interpolation FPS (slow, for smooth slow-mo)")
	fs.StringVar(&f.bgColor, "bg-color", "", "Background color (hex or name)")
	fs.StringVar(&f.bgImage, "bg-image", "", "Background image file path")
	fs.BoolVar(&f.compress, "compress", false, "Send to gif-compressor after conversion")
	fs.BoolVar(&f.noProgress, "no-progress", false, "Disable progress output")
	fs.IntVar(&f.timeout, "timeout", 0, "Timeout in seconds (default: 300)")
	fs.StringVar(&f.configPath, "config", "", "Config file path")
	fs.BoolVar(&f.noHistory, "no-history", false, "Do not record the job in local history")

	// Accept both "convert input.mp4 --width 320" and
	// "convert --width 320 input.mp4"; the flag package stops at the
	// first positional argument, so peel a leading input path off first.
	var input string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		input = args[0]
		args = args[1:]
	}
	_ = fs.Parse(args)
	if input == "" {
		input = fs.Arg(0)
	}
	if input == "" {
		slog.Error("input file is required")
		slog.Info("Usage: gif-converter convert <input> [options]")
		return ExitFailure
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return ExitFailure
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	applyDefaults(&f, cfg)

	if _, err := os.Stat(input); err != nil {
		slog.Error("Input file not found", "path", input)
		return ExitFailure
	}
	if f.bgImage != "" {
		if _, err := os.Stat(f.bgImage); err != nil {
			slog.Error("Background image not found", "path", f.bgImage)
			return ExitFailure
		}
	}
	switch f.rotate {
	case 0, 90, 180, 270:
	default:
		slog.Error("Invalid rotation, must be 0, 90, 180 or 270", "rotate", f.rotate)
		return ExitFailure
	}

	opts := buildOptions(&f)
	printer := progress.New(os.Stdout, !f.noProgress)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(f.baseURL)
	if err := api.Health(ctx); err != nil {
		if abortedErr(err) {
			return reportAborted()
		}
		slog.Error("Cannot connect to server", "url", api.BaseURL(), "error", err)
		slog.Info("Make sure the gif-converter service is running.")
		return ExitFailure
	}

	printer.Println(fmt.Sprintf("Uploading %s...", filepath.Base(input)))
	jobID, err := api.Upload(ctx, input, f.bgImage, opts)
	if err != nil {
		if abortedErr(err) {
			return reportAborted()
		}
		slog.Error("Upload failed", "error", err)
		return ExitFailure
	}
	printer.Println("Job created: " + jobID)

	tracker := openHistory(&f, cfg)
	if tracker != nil {
		defer func() { _ = tracker.Close() }()
		if err := tracker.RecordSubmission(&history.Record{
			JobID:      jobID,
			SourcePath: input,
			OutputPath: f.output,
		}); err != nil {
			slog.Warn("Failed to record submission", "error", err)
		}
	}

	job, err := api.WaitForCompletion(ctx, jobID, client.WaitOptions{
		Timeout:  time.Duration(f.timeout) * time.Second,
		Reporter: printer,
	})
	if err != nil {
		recordFailure(tracker, jobID, err)
		if abortedErr(err) {
			return reportAborted()
		}
		slog.Error("Conversion did not complete", "job_id", jobID, "error", err)
		return ExitFailure
	}
	if tracker != nil {
		if err := tracker.RecordOutcome(jobID, job, ""); err != nil {
			slog.Warn("Failed to record outcome", "error", err)
		}
	}

	if f.urlOnly {
		fmt.Println(api.DownloadURL(jobID))
		return ExitSuccess
	}

	outPath := f.output
	if outPath == "" {
		outPath = defaultOutputPath(input)
	}

	if code := fetchResult(ctx, api, jobID, outPath, printer); code != ExitSuccess {
		return code
	}
	if tracker != nil {
		if err := tracker.RecordOutcome(jobID, job, outPath); err != nil {
			slog.Warn("Failed to record outcome", "error", err)
		}
	}

	printSummary(printer, job)
	return ExitSuccess
}

func applyDefaults(f *convertFlags, cfg *config.Config) {
	if f.baseURL == "" {
		f.baseURL = cfg.Server.BaseURL
	}
	if f.timeout <= 0 {
		f.timeout = cfg.Server.Timeout
	}
}

func buildOptions(f *convertFlags) models.ConversionOptions {
	opts := models.ConversionOptions{
		Transpose:       models.TransposeFromDegrees(f.rotate),
		BackgroundColor: f.bgColor,
		CompressOutput:  f.compress,
	}
	if f.width > 0 {
		opts.Width = &f.width
	}
	if f.height > 0 {
		opts.Height = &f.height
	}
	if f.inputFPS > 0 {
		opts.InputFPS = &f.inputFPS
	}
	if f.outputFPS > 0 {
		opts.OutputFPS = &f.outputFPS
	}
	if f.interpFPS > 0 {
		opts.MinterpolateFPS = &f.interpFPS
	}
	return opts
}

func openHistory(f *convertFlags, cfg *config.Config) *history.Tracker {
	if f.noHistory || cfg.History.Disabled {
		return nil
	}
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" {
		return nil
	}
	tracker, err := history.Open(path)
	if err != nil {
		slog.Warn("Submission history unavailable", "path", path, "error", err)
		return nil
	}
	return tracker
}

func recordFailure(tracker *history.Tracker, jobID string, err error) {
	if tracker == nil {
		return
	}
	var failed *client.ConversionFailedError
	if !errors.As(err, &failed) {
		return
	}
	outcome := &models.Job{Status: models.StatusFailed, ErrorMessage: failed.Message}
	if err := tracker.RecordOutcome(jobID, outcome, ""); err != nil {
		slog.Warn("Failed to record outcome", "error", err)
	}
}

// fetchResult streams the artifact to outPath, rendering transfer progress
// when the server reports a content length.
func fetchResult(ctx context.Context, api *client.Client, jobID, outPath string, printer *progress.Printer) int {
	printer.Println(fmt.Sprintf("Downloading to %s...", outPath))

	written, err := api.Download(ctx, jobID, outPath, func(transferred, total int64) {
		if total > 0 {
			printer.Update("Downloading", int(transferred*100/total), 0)
		}
	})
	if err != nil {
		if abortedErr(err) {
			return reportAborted()
		}
		slog.Error("Download failed", "error", err)
		return ExitFailure
	}

	printer.Finish("Downloaded")
	printer.Println(fmt.Sprintf("Saved: %s (%s)", outPath, formatter.HumanBytes(written)))
	return ExitSuccess
}

func printSummary(printer *progress.Printer, job *models.Job) {
	if job.OriginalSize > 0 && job.ConvertedSize > 0 {
		ratio := float64(job.ConvertedSize) / float64(job.OriginalSize) * 100
		printer.Println(fmt.Sprintf("Size: %s → %s (%.1f%%)",
			formatter.HumanBytes(job.OriginalSize),
			formatter.HumanBytes(job.ConvertedSize),
			ratio))
	}
	printer.Println("Dimensions: " + formatDimensions(job))
}

func formatDimensions(job *models.Job) string {
	w, h := "?", "?"
	if job.ConvertedWidth > 0 {
		w = fmt.Sprint(job.ConvertedWidth)
	}
	if job.ConvertedHeight > 0 {
		h = fmt.Sprint(job.ConvertedHeight)
	}
	return w + "x" + h
}

// defaultOutputPath derives the destination for an unnamed download:
// the input file's stem plus "-converted.gif", in the working directory.
func defaultOutputPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "-converted.gif"
}

// abortedErr reports whether err stems from an interrupt rather than a
// request failure.
func abortedErr(err error) bool {
	return errors.Is(err, context.Canceled)
}

func reportAborted() int {
	fmt.Fprintln(os.Stderr, "\nAborted.")
	return ExitAborted
}
