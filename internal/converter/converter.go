// Package converter runs the external encoder once per job, sequentially,
// and aggregates the results.
package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/PerArneng/video-compress/internal/preset"
)

// Status classifies the outcome of one job.
type Status string

// Job outcomes.
const (
	StatusSuccess        Status = "success"
	StatusEncoderFailure Status = "encoder_failure"
	StatusSkipped        Status = "skipped"
)

// ErrEncoderNotFound means the encoder binary could not be located or
// started. No job can succeed, so the whole run aborts.
var ErrEncoderNotFound = errors.New("encoder binary not found")

// Job is one pending conversion of an input file with a preset.
type Job struct {
	InputPath  string
	OutputPath string
	Preset     preset.Preset
}

// JobResult records the outcome of one job. ExitCode is the encoder's exit
// status, or -1 when the job failed before the encoder ran.
type JobResult struct {
	InputPath  string
	OutputPath string
	Status     Status
	ExitCode   int
	Duration   time.Duration
}

// commandRunner abstracts the synchronous encoder invocation so tests can
// substitute the subprocess.
type commandRunner interface {
	Run(name string, args ...string) (int, error)
}

// execRunner invokes the encoder with its output streams passed through.
// It returns the process exit code; the error is non-nil only when the
// process could not be started at all.
type execRunner struct{}

func (execRunner) Run(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

// Driver executes conversion jobs against a single encoder binary.
type Driver struct {
	encoderPath  string
	skipExisting bool
	runner       commandRunner
}

// New creates a driver for the given encoder binary. With skipExisting,
// jobs whose output file already exists are skipped instead of re-encoded.
func New(encoderPath string, skipExisting bool) *Driver {
	return &Driver{
		encoderPath:  encoderPath,
		skipExisting: skipExisting,
		runner:       execRunner{},
	}
}

// Run processes jobs in order, one encoder subprocess at a time. A job
// failure is recorded and the batch continues; an encoder that cannot be
// started aborts the run with ErrEncoderNotFound, returning the results
// collected so far.
func (d *Driver) Run(jobs []Job) ([]JobResult, error) {
	results := make([]JobResult, 0, len(jobs))

	for i, job := range jobs {
		slog.Info("Starting conversion",
			"job", fmt.Sprintf("%d/%d", i+1, len(jobs)),
			"input", job.InputPath,
			"output", job.OutputPath,
			"preset", job.Preset.ID,
		)

		if d.skipExisting && fileExists(job.OutputPath) {
			slog.Warn("Output already exists, skipping", "output", job.OutputPath)
			results = append(results, JobResult{
				InputPath:  job.InputPath,
				OutputPath: job.OutputPath,
				Status:     StatusSkipped,
			})
			continue
		}

		result, err := d.convert(job)
		if err != nil {
			return results, fmt.Errorf("%w: %v", ErrEncoderNotFound, err)
		}
		results = append(results, result)

		if result.Status == StatusSuccess {
			slog.Info("Conversion completed", "input", job.InputPath, "duration", result.Duration)
		} else {
			slog.Error("Conversion failed", "input", job.InputPath, "exit_code", result.ExitCode)
		}
	}

	return results, nil
}

// convert executes one job. The returned error is non-nil only when the
// encoder process could not be started.
func (d *Driver) convert(job Job) (JobResult, error) {
	result := JobResult{InputPath: job.InputPath, OutputPath: job.OutputPath}

	outputDir := filepath.Dir(job.OutputPath)
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		slog.Error("Failed to create output directory", "path", outputDir, "error", err)
		result.Status = StatusEncoderFailure
		result.ExitCode = -1
		return result, nil
	}

	args := BuildArgs(job)
	slog.Debug("Executing encoder command", "encoder", d.encoderPath, "args", args)

	start := time.Now()
	code, err := d.runner.Run(d.encoderPath, args...)
	result.Duration = time.Since(start)
	if err != nil {
		return result, err
	}

	result.ExitCode = code
	if code == 0 {
		result.Status = StatusSuccess
	} else {
		result.Status = StatusEncoderFailure
	}
	return result, nil
}

// BuildArgs constructs the encoder argument list for a job. The argument
// order is fixed: input, codec library, resolution, bitrate, output.
func BuildArgs(job Job) []string {
	args := []string{
		"-i", job.InputPath,
	}

	// Video encoding
	args = append(args,
		"-c:v", job.Preset.Codec.Library(),
		"-s", job.Preset.Resolution(),
		"-b:v", job.Preset.Bitrate(),
	)

	// Output file
	args = append(args, job.OutputPath)

	return args
}

// Summary aggregates a batch's results.
type Summary struct {
	Total        int
	Succeeded    int
	Failed       int
	Skipped      int
	FailedInputs []string
}

// Summarize counts a batch's outcomes and collects the failing inputs.
func Summarize(results []JobResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusSkipped:
			s.Skipped++
		case StatusEncoderFailure:
			s.Failed++
			s.FailedInputs = append(s.FailedInputs, r.InputPath)
		}
	}
	return s
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
