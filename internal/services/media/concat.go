package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devansh-m12/faceify/internal/utils"
)

// Concat joins already-encoded clips in order via the concat demuxer with
// a lossless stream copy.
func (e *Engine) Concat(files []string, output string) error {
	if len(files) == 0 {
		return fmt.Errorf("nothing to concatenate")
	}

	var list strings.Builder
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", abs)
	}

	if err := os.MkdirAll(e.TmpDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create tmp directory: %w", err)
	}
	// One list per call, never a shared fixed name: concats from
	// concurrent conversions must not overwrite each other.
	listFile, err := os.CreateTemp(e.TmpDir, "concat_*.txt")
	if err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	defer os.Remove(listFile.Name())

	if _, err := listFile.WriteString(list.String()); err != nil {
		listFile.Close()
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	if err := listFile.Close(); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}

	_, err = utils.Exec(
		"ffmpeg",
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile.Name(),
		"-c", "copy",
		output,
	)
	if err != nil {
		return fmt.Errorf("concat failed: %w", err)
	}
	return nil
}
