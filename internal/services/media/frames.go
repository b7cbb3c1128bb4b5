package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devansh-m12/faceify/internal/utils"
)

// ExtractFrame writes the frame at timestamp to a JPEG in the scratch
// directory and returns its path. The caller owns deletion.
func (e *Engine) ExtractFrame(path string, timestamp float64) (string, error) {
	framesDir := filepath.Join(e.TmpDir, "frames")
	if err := os.MkdirAll(framesDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create frames directory: %w", err)
	}

	// Unique per call: concurrent conversions sample the same timestamps,
	// so timestamp-only names would collide.
	f, err := os.CreateTemp(framesDir, fmt.Sprintf("frame_%.3f_*.jpg", timestamp))
	if err != nil {
		return "", fmt.Errorf("failed to create frame file: %w", err)
	}
	out := f.Name()
	f.Close()

	_, err = utils.Exec(
		"ffmpeg",
		"-y",
		"-ss", fmt.Sprintf("%.3f", timestamp),
		"-i", path,
		"-frames:v", "1",
		"-q:v", "2",
		out,
	)
	if err != nil {
		os.Remove(out)
		return "", fmt.Errorf("frame extraction at %.3fs failed: %w", timestamp, err)
	}
	return out, nil
}
