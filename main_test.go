package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PerArneng/video-compress/internal/history"
)

// stubEncoder writes a shell script standing in for the real encoder.
func stubEncoder(t *testing.T, exitCode string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "encoder.sh")
	script := "#!/bin/sh\nexit " + exitCode + "\n"
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil {
		t.Fatalf("Failed to write stub encoder: %v", err)
	}
	return path
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("video"), 0o600); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}
	return path
}

func TestRunListPresets(t *testing.T) {
	if code := run([]string{"--list-presets"}); code != exitOK {
		t.Errorf("Expected exit %d, got %d", exitOK, code)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no input", []string{}, exitUsage},
		{"unknown flag", []string{"--bogus"}, exitUsage},
		{"positional argument", []string{"-i", "in.mp4", "stray"}, exitUsage},
		{"bad log level", []string{"-i", "in.mp4", "--log-level", "loud"}, exitUsage},
		{"bad format", []string{"-i", "in.mp4", "-f", "yaml"}, exitUsage},
		{"missing config file", []string{"-i", "in.mp4", "-c", "/nonexistent/cfg.yaml"}, exitUsage},
		{"help", []string{"-h"}, exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(tt.args); code != tt.code {
				t.Errorf("Expected exit %d, got %d", tt.code, code)
			}
		})
	}
}

func TestRunUnknownPreset(t *testing.T) {
	code := run([]string{"-i", "in.mp4", "-p", "h264_fhd_6"})
	if code != exitUnknownPreset {
		t.Errorf("Expected exit %d, got %d", exitUnknownPreset, code)
	}
}

func TestRunPathNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mp4")
	if code := run([]string{"-i", missing}); code != exitPathNotFound {
		t.Errorf("Expected exit %d, got %d", exitPathNotFound, code)
	}
}

func TestRunInvalidInput(t *testing.T) {
	notes := writeInput(t, t.TempDir(), "notes.txt")
	if code := run([]string{"-i", notes}); code != exitInvalidInput {
		t.Errorf("Expected exit %d, got %d", exitInvalidInput, code)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	if code := run([]string{"-i", t.TempDir()}); code != exitOK {
		t.Errorf("Expected exit %d for empty directory, got %d", exitOK, code)
	}
}

func TestRunEncoderNotFound(t *testing.T) {
	input := writeInput(t, t.TempDir(), "clip.mp4")
	code := run([]string{"-i", input, "--encoder", "/nonexistent/ffmpeg"})
	if code != exitNoEncoder {
		t.Errorf("Expected exit %d, got %d", exitNoEncoder, code)
	}
}

func TestRunConvertsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.mp4")
	writeInput(t, dir, "b.mp4")
	outDir := filepath.Join(t.TempDir(), "out")
	encoder := stubEncoder(t, "0")

	code := run([]string{"-i", dir, "-o", outDir, "--encoder", encoder})
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}
}

func TestRunReportsJobFailure(t *testing.T) {
	input := writeInput(t, t.TempDir(), "clip.mp4")
	encoder := stubEncoder(t, "3")

	code := run([]string{"-i", input, "--encoder", encoder})
	if code != exitFailure {
		t.Errorf("Expected exit %d, got %d", exitFailure, code)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	input := writeInput(t, t.TempDir(), "clip.mp4")
	encoder := stubEncoder(t, "0")
	dbPath := filepath.Join(t.TempDir(), "history.db")

	code := run([]string{"-i", input, "--encoder", encoder, "--history", dbPath})
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}

	tracker, err := history.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to open history database: %v", err)
	}
	defer tracker.Close()

	stats, err := tracker.Stats()
	if err != nil {
		t.Fatalf("Failed to read stats: %v", err)
	}
	if stats["success"] != 1 {
		t.Errorf("Expected 1 recorded success, got %d", stats["success"])
	}
}
