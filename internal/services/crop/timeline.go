package crop

// BuildTimeline aggregates a sampled face timeline into crop positions.
// The crop window dimensions are derived once from the video geometry;
// each point only moves the window. Points with no faces get the centered
// default and are marked unreliable for the gap filler.
func BuildTimeline(points []TimelinePoint, video VideoInfo, targetW, targetH int) []CropTimelinePoint {
	window := VerticalCrop(video, targetW, targetH)

	out := make([]CropTimelinePoint, len(points))
	for i, p := range points {
		out[i] = CropTimelinePoint{
			Timestamp: p.Timestamp,
			Crop:      Aggregate(window, p.Faces, video),
			Reliable:  len(p.Faces) > 0,
		}
	}
	return out
}

// BuildPlan runs the full crop-timeline pipeline: aggregation, gap
// filling, smoothing, keyframe reduction, and segment planning.
func BuildPlan(points []TimelinePoint, video VideoInfo, targetW, targetH int) Plan {
	timeline := BuildTimeline(points, video, targetW, targetH)
	timeline = FillGaps(timeline)
	timeline = Smooth(timeline)
	timeline = Reduce(timeline)
	return PlanSegments(timeline, video.Duration)
}

// HasReliablePoint reports whether any point in the timeline carries an
// actual detection. Without one the whole pipeline degrades to a static
// center crop.
func HasReliablePoint(points []TimelinePoint) bool {
	for _, p := range points {
		if len(p.Faces) > 0 {
			return true
		}
	}
	return false
}
