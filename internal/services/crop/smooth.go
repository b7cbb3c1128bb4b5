package crop

import (
	"log"
	"math"
)

const (
	// Blend between the original detection and the local average. Biased
	// toward the original so smoothing only damps outliers.
	originalBias = 0.7
	smoothedBias = 0.3

	// A point merges into the previous keyframe when it moved less than
	// this on each axis and sits closer than minKeyframeSpacing in time.
	similarityThresholdX = 20
	similarityThresholdY = 10
	minKeyframeSpacing   = 5.0
)

// Smooth applies a time-weighted 3-point local average to interior crop
// positions. Closer-in-time neighbors get more influence. The first and
// last points are preserved exactly. Sequences shorter than 3 pass
// through unchanged.
func Smooth(points []CropTimelinePoint) []CropTimelinePoint {
	if len(points) < 3 {
		return points
	}

	out := make([]CropTimelinePoint, len(points))
	copy(out, points)

	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := points[i-1], points[i], points[i+1]

		dtPrev := cur.Timestamp - prev.Timestamp
		dtNext := next.Timestamp - cur.Timestamp
		total := dtPrev + dtNext
		if total <= 0 {
			continue
		}
		weightPrev := 1 - dtPrev/total
		weightNext := 1 - dtNext/total

		avgX := weightPrev*float64(prev.Crop.X) + weightNext*float64(next.Crop.X)
		avgY := weightPrev*float64(prev.Crop.Y) + weightNext*float64(next.Crop.Y)

		out[i].Crop.X = int(math.Round(originalBias*float64(cur.Crop.X) + smoothedBias*avgX))
		out[i].Crop.Y = int(math.Round(originalBias*float64(cur.Crop.Y) + smoothedBias*avgY))
	}
	return out
}

// Reduce merges near-identical consecutive keyframes so the planner emits
// as few segments as possible. A point is dropped when it is similar to
// the last kept point and close to it in time. The first and final points
// are always kept. Reducing an already-reduced sequence is a no-op.
func Reduce(points []CropTimelinePoint) []CropTimelinePoint {
	if len(points) == 0 {
		return points
	}

	kept := []CropTimelinePoint{points[0]}
	for i := 1; i < len(points); i++ {
		p := points[i]
		last := kept[len(kept)-1]

		similar := abs(p.Crop.X-last.Crop.X) < similarityThresholdX &&
			abs(p.Crop.Y-last.Crop.Y) < similarityThresholdY
		closeInTime := p.Timestamp-last.Timestamp < minKeyframeSpacing

		if similar && closeInTime && i != len(points)-1 {
			continue
		}
		kept = append(kept, p)
	}

	if len(kept) < len(points) {
		log.Printf("[SMOOTH] Reduced %d keyframes to %d", len(points), len(kept))
	}
	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
