package converter

import (
	"fmt"
	"os"
	"os/exec"
)

// DefaultEncoder is the binary name used when no override is configured.
const DefaultEncoder = "ffmpeg"

// CheckEncoder verifies the encoder binary can be located, so a missing
// binary is reported before any job starts.
func CheckEncoder(path string) error {
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, path)
	}
	return nil
}

// FindEncoder attempts to find the encoder in common locations, falling
// back to a $PATH lookup.
func FindEncoder() string {
	paths := []string{
		"/usr/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/opt/ffmpeg/bin/ffmpeg",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return DefaultEncoder
}
