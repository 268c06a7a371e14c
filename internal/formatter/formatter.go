// Package formatter renders preset listings and conversion reports.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PerArneng/video-compress/internal/converter"
	"github.com/PerArneng/video-compress/internal/preset"
)

// Format represents an output format type
type Format string

const (
	// FormatTable is the default table format
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON
	FormatJSON Format = "json"
	// FormatCSV outputs data as CSV
	FormatCSV Format = "csv"
)

// ParseFormat parses a format string into a Format type
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	default:
		return FormatTable
	}
}

// Output renders reports in the configured format
type Output struct {
	format Format
	writer io.Writer
}

// New creates a new Output formatter
func New(w io.Writer, format Format) *Output {
	return &Output{
		format: format,
		writer: w,
	}
}

type presetRecord struct {
	ID          string `json:"id"`
	Codec       string `json:"codec"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BitrateKbps int    `json:"bitrate_kbps"`
}

// Presets renders the preset table, one row per preset in table order.
func (o *Output) Presets(presets []preset.Preset) error {
	headers := []string{"ID", "CODEC", "RESOLUTION", "BITRATE"}
	rows := make([][]string, 0, len(presets))
	records := make([]presetRecord, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{p.ID, string(p.Codec), p.Resolution(), p.Bitrate()})
		records = append(records, presetRecord{
			ID:          p.ID,
			Codec:       string(p.Codec),
			Width:       p.Width,
			Height:      p.Height,
			BitrateKbps: p.BitrateKbps,
		})
	}
	return o.print(headers, rows, records)
}

type resultRecord struct {
	InputPath       string  `json:"input_path"`
	OutputPath      string  `json:"output_path"`
	Status          string  `json:"status"`
	ExitCode        int     `json:"exit_code"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type reportRecord struct {
	Results   []resultRecord `json:"results"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
}

// Results renders the batch report, one row per job in input order.
func (o *Output) Results(results []converter.JobResult, summary converter.Summary) error {
	headers := []string{"INPUT", "OUTPUT", "STATUS", "EXIT", "DURATION"}
	rows := make([][]string, 0, len(results))
	records := make([]resultRecord, 0, len(results))
	for _, r := range results {
		exit := "-"
		if r.Status == converter.StatusEncoderFailure {
			exit = strconv.Itoa(r.ExitCode)
		}
		rows = append(rows, []string{
			r.InputPath,
			r.OutputPath,
			string(r.Status),
			exit,
			formatDuration(r.Duration),
		})
		records = append(records, resultRecord{
			InputPath:       r.InputPath,
			OutputPath:      r.OutputPath,
			Status:          string(r.Status),
			ExitCode:        r.ExitCode,
			DurationSeconds: r.Duration.Seconds(),
		})
	}

	report := reportRecord{
		Results:   records,
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Skipped:   summary.Skipped,
	}
	return o.print(headers, rows, report)
}

func (o *Output) print(headers []string, rows [][]string, jsonData any) error {
	switch o.format {
	case FormatJSON:
		return o.printJSON(jsonData)
	case FormatCSV:
		return o.printCSV(headers, rows)
	default:
		o.printTable(headers, rows)
		return nil
	}
}

func (o *Output) printJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (o *Output) printTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(o.writer, headers, widths)
	printSeparator(o.writer, widths)
	for _, row := range rows {
		printRow(o.writer, row, widths)
	}
}

func (o *Output) printCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(o.writer)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}

func printRow(w io.Writer, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			_, _ = fmt.Fprintf(w, " | ")
		}
		width := 10
		if i < len(widths) {
			width = widths[i]
		}
		_, _ = fmt.Fprintf(w, "%-*s", width, cell)
	}
	_, _ = fmt.Fprintln(w)
}

func printSeparator(w io.Writer, widths []int) {
	for i, width := range widths {
		if i > 0 {
			_, _ = fmt.Fprintf(w, "-+-")
		}
		_, _ = fmt.Fprintf(w, "%s", strings.Repeat("-", width))
	}
	_, _ = fmt.Fprintln(w)
}
