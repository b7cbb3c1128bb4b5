package crop

import "log"

const (
	// Keyframes all within this margin of the first collapse into one
	// static crop, skipping segmentation entirely.
	staticCropMargin = 5

	// Segments shorter than this are too brief to render separately and
	// get merged into a neighbor.
	minSegmentDuration = 0.5
)

// PlanSegments collapses a reduced keyframe sequence into a render plan:
// either one static crop for the whole video, or a list of segments that
// tile [0, duration) with no gaps or overlaps and no segment shorter than
// minSegmentDuration.
func PlanSegments(keyframes []CropTimelinePoint, duration float64) Plan {
	if len(keyframes) == 0 {
		return Plan{Static: true}
	}

	if len(keyframes) == 1 || allNearFirst(keyframes) {
		log.Printf("[PLANNER] Static crop (%d keyframes within %dpx)", len(keyframes), staticCropMargin)
		return Plan{Static: true, StaticCrop: keyframes[0].Crop}
	}

	segments := make([]Segment, 0, len(keyframes))

	// The first keyframe's crop covers from t=0 even when the first sample
	// sits later; anything before it had no better information anyway.
	start := 0.0
	for i, kf := range keyframes {
		end := duration
		if i < len(keyframes)-1 {
			end = keyframes[i+1].Timestamp
		}
		if end <= start {
			continue
		}
		segments = append(segments, Segment{
			Start:    start,
			Duration: end - start,
			CropX:    kf.Crop.X,
			CropY:    kf.Crop.Y,
		})
		start = end
	}

	segments = mergeShortSegments(segments)
	log.Printf("[PLANNER] %d segments over %.1fs", len(segments), duration)
	return Plan{Segments: segments, StaticCrop: keyframes[0].Crop}
}

// allNearFirst reports whether every keyframe's crop position lies within
// staticCropMargin of the first keyframe's position on both axes.
func allNearFirst(keyframes []CropTimelinePoint) bool {
	first := keyframes[0].Crop
	for _, kf := range keyframes[1:] {
		if abs(kf.Crop.X-first.X) > staticCropMargin || abs(kf.Crop.Y-first.Y) > staticCropMargin {
			return false
		}
	}
	return true
}

// mergeShortSegments folds any segment shorter than minSegmentDuration
// into its predecessor (the first segment folds forward instead), keeping
// the plan gap-free.
func mergeShortSegments(segments []Segment) []Segment {
	out := segments[:0]
	for _, seg := range segments {
		if seg.Duration >= minSegmentDuration || len(out) == 0 {
			out = append(out, seg)
			continue
		}
		out[len(out)-1].Duration += seg.Duration
	}

	// A too-short leading segment folds into the one after it.
	if len(out) > 1 && out[0].Duration < minSegmentDuration {
		out[1].Start = out[0].Start
		out[1].Duration += out[0].Duration
		out = out[1:]
	}
	return out
}
