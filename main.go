// Package main implements the gif-converter command line client.
package main

import (
	"fmt"
	"os"

	"github.com/arstropica/gif-converter/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(commands.ExitFailure)
	}

	cmd := os.Args[1]
	subArgs := os.Args[2:]

	switch cmd {
	case "convert":
		os.Exit(commands.Convert(subArgs))
	case "status":
		os.Exit(commands.Status(subArgs))
	case "download":
		os.Exit(commands.Download(subArgs))
	case "history":
		os.Exit(commands.History(subArgs))
	case "help", "--help", "-h":
		printUsage()
	default:
		// Anything else is treated as an input file for convert, so
		// `gif-converter video.mp4 --width 320` works without a subcommand.
		os.Exit(commands.Convert(os.Args[1:]))
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `GIF Converter CLI

Convert videos and images to GIFs using the gif-converter service.

Usage:
  gif-converter <input> [options]
  gif-converter <command> [options]

Commands:
  convert <input>        Convert a file (the default when given a path)
  status                 Show the status of a job
  download               Download the result of a finished job
  history                List locally recorded submissions

Convert Options:
  -o, --output <path>    Output file path (default: <input>-converted.gif)
  --url-only             Print download URL instead of downloading
  --base-url <url>       API base URL (default: http://localhost:5051)
  --width <px>           Output width (auto if not set)
  --height <px>          Output height (auto if not set)
  --rotate <deg>         Rotation in degrees clockwise: 0, 90, 180, 270
  --input-fps <fps>      Override input frame rate
  --fps <fps>            Output frame rate (alias: --output-fps)
  --interpolate <fps>    Motion interpolation FPS (slow, for smooth slow-mo)
  --bg-color <color>     Background color (hex or name, e.g. #ffffff, black)
  --bg-image <path>      Background image file path
  --compress             Send to gif-compressor after conversion
  --no-progress          Disable progress output
  --timeout <seconds>    Conversion timeout (default: 300)
  --config <path>        Config file path
  --no-history           Do not record the job in local history

Status Options:
  --job-id <id>          Job ID to query (required)
  --format <format>      Output format: table, json, csv

Download Options:
  --job-id <id>          Job ID to download (required)
  -o, --output <path>    Output file path

History Options:
  --limit <n>            Maximum number of entries (default: 50)
  --format <format>      Output format: table, json, csv

Examples:
  gif-converter video.mp4
  gif-converter video.mp4 -o output.gif --width 320 --fps 15
  gif-converter video.mp4 --rotate 90 --compress
  gif-converter video.mp4 --url-only
  gif-converter status --job-id abc123
  gif-converter download --job-id abc123 -o out.gif
  gif-converter history --limit 10`)
}
