package media

import (
	"fmt"
	"log"

	"github.com/devansh-m12/faceify/internal/services/crop"
	"github.com/devansh-m12/faceify/internal/utils"
)

// RenderSegment cuts [seg.Start, seg.Start+seg.Duration) out of the input,
// crops it at the segment's fixed position, scales to the target size, and
// encodes it to output. Segments are independent, so callers may run
// several renders at once.
func (e *Engine) RenderSegment(input, output string, seg crop.Segment, window crop.CropRect, targetW, targetH int) error {
	vf := fmt.Sprintf("crop=%d:%d:%d:%d,scale=%d:%d,setsar=1",
		window.Width, window.Height, seg.CropX, seg.CropY, targetW, targetH)

	out, err := utils.Exec(
		"ffmpeg",
		"-y",
		"-ss", fmt.Sprintf("%.3f", seg.Start),
		"-i", input,
		"-t", fmt.Sprintf("%.3f", seg.Duration),
		"-vf", vf,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		output,
	)
	if err != nil {
		log.Printf("[RENDER] ffmpeg output: %s", out)
		return fmt.Errorf("segment render at %.3fs failed: %w", seg.Start, err)
	}
	return nil
}

// RenderStatic crops the whole video at one fixed position. Used for the
// single-crop plan and as the fallback when segmented rendering fails.
func (e *Engine) RenderStatic(input, output string, window crop.CropRect, targetW, targetH int) error {
	vf := fmt.Sprintf("crop=%d:%d:%d:%d,scale=%d:%d,setsar=1",
		window.Width, window.Height, window.X, window.Y, targetW, targetH)

	out, err := utils.Exec(
		"ffmpeg",
		"-y",
		"-i", input,
		"-vf", vf,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		output,
	)
	if err != nil {
		log.Printf("[RENDER] ffmpeg output: %s", out)
		return fmt.Errorf("static render failed: %w", err)
	}
	return nil
}
