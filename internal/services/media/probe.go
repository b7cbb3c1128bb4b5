package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devansh-m12/faceify/internal/services/crop"
	"github.com/devansh-m12/faceify/internal/utils"
)

// Engine shells out to ffmpeg/ffprobe for everything pixel-related:
// probing, frame extraction, scene detection, segment rendering, and
// concatenation. It is the external media collaborator of the pipeline.
type Engine struct {
	// TmpDir holds per-conversion scratch files (frames, filter lists).
	TmpDir string
}

// NewEngine creates an engine writing scratch files under tmpDir.
func NewEngine(tmpDir string) *Engine {
	return &Engine{TmpDir: tmpDir}
}

// Probe reads the source geometry and duration once per conversion.
func (e *Engine) Probe(path string) (crop.VideoInfo, error) {
	out, err := utils.Exec(
		"ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return crop.VideoInfo{}, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	lines := strings.Fields(strings.TrimSpace(out))
	if len(lines) < 3 {
		return crop.VideoInfo{}, fmt.Errorf("unexpected ffprobe output: %q", out)
	}

	width, err := strconv.Atoi(lines[0])
	if err != nil {
		return crop.VideoInfo{}, fmt.Errorf("failed to parse width: %w", err)
	}
	height, err := strconv.Atoi(lines[1])
	if err != nil {
		return crop.VideoInfo{}, fmt.Errorf("failed to parse height: %w", err)
	}
	duration, err := strconv.ParseFloat(lines[2], 64)
	if err != nil {
		return crop.VideoInfo{}, fmt.Errorf("failed to parse duration: %w", err)
	}

	return crop.VideoInfo{Width: width, Height: height, Duration: duration}, nil
}
