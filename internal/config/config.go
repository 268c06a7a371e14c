// Package config loads the optional YAML configuration file and merges it
// with command-line flags into the effective runtime settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PerArneng/video-compress/internal/preset"
)

// LoggingSettings defines logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// PresetSpec is a user-defined preset table entry from the config file.
type PresetSpec struct {
	ID          string `yaml:"id"`
	Codec       string `yaml:"codec"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	BitrateKbps int    `yaml:"bitrate_kbps"`
}

// Config holds the file-backed configuration.
type Config struct {
	Encoder struct {
		Path string `yaml:"path"`
	} `yaml:"encoder"`

	Output struct {
		Dir          string `yaml:"dir"`
		SkipExisting bool   `yaml:"skip_existing"`
	} `yaml:"output"`

	Defaults struct {
		Preset string `yaml:"preset"`
	} `yaml:"defaults"`

	History struct {
		Path string `yaml:"path"`
	} `yaml:"history"`

	Logging LoggingSettings `yaml:"logging"`

	Presets []PresetSpec `yaml:"presets"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Defaults.Preset = preset.DefaultID
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// Load reads the YAML config file at path. File values overlay the
// defaults; an empty path yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// PresetTable builds the effective preset table: the built-ins followed by
// the config file's entries, in file order.
func (c *Config) PresetTable() (*preset.Table, error) {
	table := preset.BuiltinTable()
	for _, spec := range c.Presets {
		codec, err := preset.ParseCodec(spec.Codec)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", spec.ID, err)
		}
		p := preset.Preset{
			ID:          spec.ID,
			Codec:       codec,
			Width:       spec.Width,
			Height:      spec.Height,
			BitrateKbps: spec.BitrateKbps,
		}
		if err := table.Add(p); err != nil {
			return nil, fmt.Errorf("preset %q: %w", spec.ID, err)
		}
	}
	return table, nil
}

// Settings are the effective runtime options after merging flags over the
// config file over the built-in defaults.
type Settings struct {
	Input        string
	PresetID     string
	OutputDir    string
	EncoderPath  string
	HistoryPath  string
	ListPresets  bool
	Recursive    bool
	SkipExisting bool
	Format       string
	LogLevel     string
	LogFormat    string
}

// Merge layers explicitly set flags over the file configuration. Flags
// without a file counterpart are taken as-is.
func (c *Config) Merge(f *Flags) Settings {
	s := Settings{
		Input:        f.Input,
		PresetID:     c.Defaults.Preset,
		OutputDir:    c.Output.Dir,
		EncoderPath:  c.Encoder.Path,
		HistoryPath:  c.History.Path,
		ListPresets:  f.ListPresets,
		Recursive:    f.Recursive,
		SkipExisting: c.Output.SkipExisting,
		Format:       f.Format,
		LogLevel:     c.Logging.Level,
		LogFormat:    c.Logging.Format,
	}

	if f.isSet("preset") {
		s.PresetID = f.PresetID
	}
	if f.isSet("output-dir") {
		s.OutputDir = f.OutputDir
	}
	if f.isSet("encoder") {
		s.EncoderPath = f.EncoderPath
	}
	if f.isSet("history") {
		s.HistoryPath = f.HistoryPath
	}
	if f.isSet("skip-existing") {
		s.SkipExisting = f.SkipExisting
	}
	if f.isSet("log-level") {
		s.LogLevel = f.LogLevel
	}
	if f.isSet("log-format") {
		s.LogFormat = f.LogFormat
	}

	return s
}

// Validate checks the merged settings before the run starts.
func (s Settings) Validate() error {
	if !s.ListPresets && s.Input == "" {
		return fmt.Errorf("input path is required (or use --list-presets)")
	}
	if !isValidLogLevel(s.LogLevel) {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", s.LogLevel)
	}
	if !isValidLogFormat(s.LogFormat) {
		return fmt.Errorf("invalid log format %q, must be one of: text, json", s.LogFormat)
	}
	switch s.Format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("invalid report format %q, must be one of: table, json, csv", s.Format)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidLogFormat(format string) bool {
	switch format {
	case "json", "text":
		return true
	default:
		return false
	}
}
