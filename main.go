// Package main implements the video-compress command line entry point.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/PerArneng/video-compress/internal/config"
	"github.com/PerArneng/video-compress/internal/converter"
	"github.com/PerArneng/video-compress/internal/formatter"
	"github.com/PerArneng/video-compress/internal/history"
	"github.com/PerArneng/video-compress/internal/logger"
	"github.com/PerArneng/video-compress/internal/resolver"
	"github.com/google/uuid"
)

// Exit codes reported to the shell.
const (
	exitOK            = 0
	exitFailure       = 1
	exitUsage         = 2
	exitUnknownPreset = 3
	exitPathNotFound  = 4
	exitInvalidInput  = 5
	exitNoEncoder     = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := config.ParseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "video-compress: %v\n", err)
		return exitUsage
	}

	settings := cfg.Merge(flags)
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "video-compress: %v\n", err)
		return exitUsage
	}

	logger.Init(settings.LogLevel, settings.LogFormat)

	table, err := cfg.PresetTable()
	if err != nil {
		slog.Error("Invalid preset configuration", "error", err)
		return exitUsage
	}

	out := formatter.New(os.Stdout, formatter.ParseFormat(settings.Format))

	if settings.ListPresets {
		if err := out.Presets(table.All()); err != nil {
			slog.Error("Failed to print presets", "error", err)
			return exitFailure
		}
		return exitOK
	}

	p, err := table.Resolve(settings.PresetID)
	if err != nil {
		slog.Error("Unknown preset", "preset", settings.PresetID, "available", table.IDs())
		return exitUnknownPreset
	}

	inputs, err := resolver.New(settings.Recursive).Resolve(settings.Input)
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrInvalidInput):
			slog.Error("Input must be an .mp4 file or a directory", "path", settings.Input)
			return exitInvalidInput
		case errors.Is(err, resolver.ErrPathNotFound):
			slog.Error("Input path not found", "path", settings.Input)
			return exitPathNotFound
		default:
			slog.Error("Failed to resolve input", "path", settings.Input, "error", err)
			return exitPathNotFound
		}
	}
	if len(inputs) == 0 {
		slog.Warn("No .mp4 files to convert", "path", settings.Input)
		return exitOK
	}

	encoderPath := settings.EncoderPath
	if encoderPath == "" {
		encoderPath = converter.FindEncoder()
	}
	if err := converter.CheckEncoder(encoderPath); err != nil {
		slog.Error("Encoder not available", "encoder", encoderPath, "error", err)
		return exitNoEncoder
	}

	// Directory inputs mirror their tree under the output dir. A single
	// file has no tree to mirror.
	root := ""
	if info, statErr := os.Stat(settings.Input); statErr == nil && info.IsDir() {
		root = settings.Input
	}
	jobs := converter.BuildJobs(inputs, root, p, settings.OutputDir)

	slog.Info("Starting batch",
		"jobs", len(jobs),
		"preset", p.ID,
		"encoder", encoderPath,
	)

	driver := converter.New(encoderPath, settings.SkipExisting)
	results, runErr := driver.Run(jobs)

	if settings.HistoryPath != "" {
		recordHistory(settings.HistoryPath, p.ID, results)
	}

	if runErr != nil {
		slog.Error("Encoder could not be started", "error", runErr)
		return exitNoEncoder
	}

	summary := converter.Summarize(results)
	slog.Info("Batch finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)

	if err := out.Results(results, summary); err != nil {
		slog.Error("Failed to print report", "error", err)
		return exitFailure
	}

	if summary.Failed > 0 {
		slog.Error("Some conversions failed", "inputs", summary.FailedInputs)
		return exitFailure
	}
	return exitOK
}

// recordHistory stores the batch results under a shared run ID. History is
// best effort and never fails the run.
func recordHistory(path, presetID string, results []converter.JobResult) {
	tracker, err := history.New(path)
	if err != nil {
		slog.Warn("Failed to open history database", "path", path, "error", err)
		return
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			slog.Warn("Failed to close history database", "error", err)
		}
	}()

	runID := uuid.New().String()[:8]
	for _, r := range results {
		if err := tracker.Record(runID, presetID, r); err != nil {
			slog.Warn("Failed to record conversion", "input", r.InputPath, "error", err)
		}
	}

	stats, err := tracker.Stats()
	if err != nil {
		slog.Warn("Failed to read history stats", "error", err)
		return
	}
	slog.Debug("History totals", "run_id", runID, "stats", stats)
}
