package crop

import (
	"log"
	"math"
	"sort"
)

const (
	// Sample count bounds: detector calls are expensive, so the sampler
	// guarantees coverage without letting scene-heavy videos explode.
	minSampleCount = 5
	maxSampleCount = 25

	// Anchor offsets near the open and close of the video.
	startAnchorOffset = 0.5
	endAnchorOffset   = 2.0

	// Fallback stride when scene detection yields nothing usable.
	uniformSampleInterval = 15.0
)

// BoundarySource supplies candidate scene-boundary timestamps. An error
// means the external engine failed entirely; the sampler degrades to
// uniform sampling in that case.
type BoundarySource func() ([]float64, error)

// SampleTimestamps picks the timestamps to run face detection at: scene
// boundaries when available, padded or thinned to stay within
// [minSampleCount, maxSampleCount], always covering the start and end
// anchors. The result is strictly increasing. Never fails.
func SampleTimestamps(duration float64, boundaries BoundarySource) []float64 {
	var candidates []float64
	if boundaries != nil {
		scenes, err := boundaries()
		if err != nil {
			log.Printf("[SAMPLER] Scene detection failed, using uniform sampling: %v", err)
			candidates = uniformTimestamps(duration)
		} else {
			candidates = scenes
		}
	}

	endAnchor := math.Max(startAnchorOffset, duration-endAnchorOffset)
	candidates = append(candidates, startAnchorOffset, endAnchor)

	samples := dedupeSorted(candidates, duration)

	if len(samples) < minSampleCount {
		samples = padUniform(samples, duration)
	}
	if len(samples) > maxSampleCount {
		samples = strideDown(samples, maxSampleCount)
	}

	log.Printf("[SAMPLER] %d sample timestamps over %.1fs", len(samples), duration)
	return samples
}

// uniformTimestamps is the degraded sampling mode: one sample every
// uniformSampleInterval seconds.
func uniformTimestamps(duration float64) []float64 {
	var ts []float64
	for t := uniformSampleInterval; t < duration; t += uniformSampleInterval {
		ts = append(ts, t)
	}
	return ts
}

// padUniform injects evenly spaced timestamps until the minimum sample
// count is reached, then re-sorts and dedupes.
func padUniform(samples []float64, duration float64) []float64 {
	need := minSampleCount - len(samples)
	step := duration / float64(need+1)
	for i := 1; i <= need; i++ {
		samples = append(samples, step*float64(i))
	}
	return dedupeSorted(samples, duration)
}

// strideDown thins an oversized sample list by even striding, always
// keeping the first and last entries.
func strideDown(samples []float64, limit int) []float64 {
	out := make([]float64, 0, limit)
	last := len(samples) - 1
	for i := 0; i < limit; i++ {
		idx := i * last / (limit - 1)
		out = append(out, samples[idx])
	}
	return dedupeSorted(out, samples[last])
}

// dedupeSorted clamps timestamps into [0, duration], sorts them, and drops
// near-duplicates (within 1ms).
func dedupeSorted(ts []float64, duration float64) []float64 {
	const epsilon = 0.001

	clamped := make([]float64, 0, len(ts))
	for _, t := range ts {
		clamped = append(clamped, clampFloat(t, 0, duration))
	}
	sort.Float64s(clamped)

	out := clamped[:0]
	for _, t := range clamped {
		if len(out) > 0 && t-out[len(out)-1] < epsilon {
			continue
		}
		out = append(out, t)
	}
	return out
}
