package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devansh-m12/faceify/internal/utils"
)

// Scene-change score above which two consecutive frames count as a cut.
const sceneThreshold = 0.3

// SceneBoundaries asks ffmpeg for timestamps where the scene-change score
// crosses the threshold. The sampler treats an error here as a signal to
// fall back to uniform sampling.
func (e *Engine) SceneBoundaries(path string) ([]float64, error) {
	out, err := utils.Exec(
		"ffmpeg",
		"-i", path,
		"-vf", fmt.Sprintf("select='gt(scene,%.2f)',metadata=print:file=-", sceneThreshold),
		"-an",
		"-f", "null",
		"-",
	)
	if err != nil {
		return nil, fmt.Errorf("scene detection failed: %w", err)
	}
	return parseSceneTimestamps(out), nil
}

// parseSceneTimestamps pulls pts_time values out of metadata=print output.
// Lines look like: "frame:12 pts:308308 pts_time:12.846".
func parseSceneTimestamps(out string) []float64 {
	var ts []float64
	for _, line := range strings.Split(out, "\n") {
		idx := strings.Index(line, "pts_time:")
		if idx < 0 {
			continue
		}
		field := strings.TrimSpace(line[idx+len("pts_time:"):])
		if end := strings.IndexByte(field, ' '); end >= 0 {
			field = field[:end]
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		ts = append(ts, v)
	}
	return ts
}
