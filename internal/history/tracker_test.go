package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PerArneng/video-compress/internal/converter"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	tracker, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	t.Cleanup(func() {
		if err := tracker.Close(); err != nil {
			t.Logf("Failed to close tracker: %v", err)
		}
	})
	return tracker
}

func TestDatabaseCreation(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "history.db")

	tracker, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			t.Logf("Failed to close tracker: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestRecordAndStats(t *testing.T) {
	tracker := newTestTracker(t)

	results := []converter.JobResult{
		{
			InputPath:  "/videos/a.mp4",
			OutputPath: "/videos/a_h265_fhd_6.mp4",
			Status:     converter.StatusSuccess,
			Duration:   90 * time.Second,
		},
		{
			InputPath:  "/videos/b.mp4",
			OutputPath: "/videos/b_h265_fhd_6.mp4",
			Status:     converter.StatusEncoderFailure,
			ExitCode:   1,
			Duration:   2 * time.Second,
		},
		{
			InputPath:  "/videos/c.mp4",
			OutputPath: "/videos/c_h265_fhd_6.mp4",
			Status:     converter.StatusSuccess,
			Duration:   45 * time.Second,
		},
	}

	for _, r := range results {
		if err := tracker.Record("run-1", "h265_fhd_6", r); err != nil {
			t.Fatalf("Failed to record result: %v", err)
		}
	}

	stats, err := tracker.Stats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}

	if stats["success"] != 2 {
		t.Errorf("Expected 2 successes, got %d", stats["success"])
	}
	if stats["encoder_failure"] != 1 {
		t.Errorf("Expected 1 failure, got %d", stats["encoder_failure"])
	}
}

func TestRunConversions(t *testing.T) {
	tracker := newTestTracker(t)

	first := converter.JobResult{
		InputPath:  "/videos/a.mp4",
		OutputPath: "/videos/a_av1_fhd_5.mkv",
		Status:     converter.StatusSuccess,
		Duration:   1500 * time.Millisecond,
	}
	second := converter.JobResult{
		InputPath:  "/videos/b.mp4",
		OutputPath: "/videos/b_av1_fhd_5.mkv",
		Status:     converter.StatusEncoderFailure,
		ExitCode:   187,
		Duration:   300 * time.Millisecond,
	}

	if err := tracker.Record("run-a", "av1_fhd_5", first); err != nil {
		t.Fatalf("Failed to record first result: %v", err)
	}
	if err := tracker.Record("run-a", "av1_fhd_5", second); err != nil {
		t.Fatalf("Failed to record second result: %v", err)
	}
	// A row from another run must not leak into run-a.
	if err := tracker.Record("run-b", "h265_fhd_6", first); err != nil {
		t.Fatalf("Failed to record other-run result: %v", err)
	}

	conversions, err := tracker.RunConversions("run-a")
	if err != nil {
		t.Fatalf("Failed to get run conversions: %v", err)
	}

	if len(conversions) != 2 {
		t.Fatalf("Expected 2 conversions, got %d", len(conversions))
	}
	if conversions[0].InputPath != "/videos/a.mp4" {
		t.Errorf("Expected a.mp4 first, got %s", conversions[0].InputPath)
	}
	if conversions[0].Duration != 1500*time.Millisecond {
		t.Errorf("Expected duration 1.5s, got %v", conversions[0].Duration)
	}
	if conversions[1].Status != "encoder_failure" {
		t.Errorf("Expected encoder_failure, got %s", conversions[1].Status)
	}
	if conversions[1].ExitCode != 187 {
		t.Errorf("Expected exit code 187, got %d", conversions[1].ExitCode)
	}
	if conversions[1].PresetID != "av1_fhd_5" {
		t.Errorf("Expected preset av1_fhd_5, got %s", conversions[1].PresetID)
	}
}

func TestStatsEmptyDatabase(t *testing.T) {
	tracker := newTestTracker(t)

	stats, err := tracker.Stats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected empty stats, got %v", stats)
	}
}
