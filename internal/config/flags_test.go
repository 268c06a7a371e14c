package config

import (
	"testing"
)

func TestParseFlagsDefaults(t *testing.T) {
	flags, err := ParseFlags([]string{"-i", "movie.mp4"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if flags.Input != "movie.mp4" {
		t.Errorf("Expected input movie.mp4, got %s", flags.Input)
	}
	if flags.PresetID != "" {
		t.Errorf("Expected empty preset flag, got %s", flags.PresetID)
	}
	if flags.Format != "table" {
		t.Errorf("Expected default format table, got %s", flags.Format)
	}
	if flags.ListPresets || flags.Recursive || flags.SkipExisting {
		t.Error("Expected boolean flags off by default")
	}
}

func TestParseFlagsShortAndLongAliases(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-i", "/videos", "-p", "av1_uhd_20", "-o", "/out", "-f", "json"}},
		{"long", []string{"--input", "/videos", "--preset", "av1_uhd_20", "--output-dir", "/out", "--format", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseFlags(tt.args)
			if err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			if flags.Input != "/videos" {
				t.Errorf("Expected input /videos, got %s", flags.Input)
			}
			if flags.PresetID != "av1_uhd_20" {
				t.Errorf("Expected preset av1_uhd_20, got %s", flags.PresetID)
			}
			if flags.OutputDir != "/out" {
				t.Errorf("Expected output dir /out, got %s", flags.OutputDir)
			}
			if flags.Format != "json" {
				t.Errorf("Expected format json, got %s", flags.Format)
			}
		})
	}
}

func TestParseFlagsTracksSetFlags(t *testing.T) {
	flags, err := ParseFlags([]string{"-p", "av1_fhd_5", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if !flags.isSet("preset") {
		t.Error("Expected preset marked as set via short alias")
	}
	if !flags.isSet("log-level") {
		t.Error("Expected log-level marked as set")
	}
	if flags.isSet("output-dir") {
		t.Error("Expected output-dir not marked as set")
	}
}

func TestParseFlagsListPresets(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-l"}},
		{"long", []string{"--list-presets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseFlags(tt.args)
			if err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}
			if !flags.ListPresets {
				t.Error("Expected list-presets enabled")
			}
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"positional argument", []string{"-i", "in.mp4", "stray"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("Expected parse error, got nil")
			}
		})
	}
}
