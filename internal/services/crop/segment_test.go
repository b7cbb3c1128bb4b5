package crop

import (
	"math"
	"testing"
)

func assertTiles(t *testing.T, segments []Segment, duration float64) {
	t.Helper()
	const epsilon = 0.001

	cursor := 0.0
	for i, seg := range segments {
		if math.Abs(seg.Start-cursor) > epsilon {
			t.Fatalf("segment %d starts at %.3f, expected %.3f (gap/overlap)", i, seg.Start, cursor)
		}
		if seg.Duration < minSegmentDuration {
			t.Fatalf("segment %d duration %.3f below %.1fs minimum", i, seg.Duration, minSegmentDuration)
		}
		cursor = seg.Start + seg.Duration
	}
	if math.Abs(cursor-duration) > epsilon {
		t.Fatalf("segments end at %.3f, want %.3f", cursor, duration)
	}
}

func TestPlanSegmentsTilesDuration(t *testing.T) {
	keyframes := []CropTimelinePoint{
		point(0, 100, 0, true),
		point(10, 300, 0, true),
		point(20, 500, 0, true),
	}

	plan := PlanSegments(keyframes, 25)
	if plan.Static {
		t.Fatal("expected a segmented plan")
	}
	if len(plan.Segments) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(plan.Segments), plan.Segments)
	}
	assertTiles(t, plan.Segments, 25)

	if plan.Segments[0].CropX != 100 || plan.Segments[2].CropX != 500 {
		t.Errorf("segment crops wrong: %+v", plan.Segments)
	}
}

func TestPlanSegmentsSingleKeyframeIsStatic(t *testing.T) {
	plan := PlanSegments([]CropTimelinePoint{point(0, 200, 0, true)}, 30)
	if !plan.Static {
		t.Fatal("single keyframe should produce a static plan")
	}
	if plan.StaticCrop.X != 200 {
		t.Errorf("static crop X = %d, want 200", plan.StaticCrop.X)
	}
}

func TestPlanSegmentsNearIdenticalKeyframesAreStatic(t *testing.T) {
	keyframes := []CropTimelinePoint{
		point(0, 200, 100, true),
		point(10, 203, 102, true),
		point(20, 198, 97, true),
	}

	plan := PlanSegments(keyframes, 30)
	if !plan.Static {
		t.Fatalf("keyframes within %dpx should collapse to static, got %+v", staticCropMargin, plan)
	}
}

func TestPlanSegmentsMergesShortTail(t *testing.T) {
	keyframes := []CropTimelinePoint{
		point(0, 100, 0, true),
		point(10, 300, 0, true),
		point(19.8, 500, 0, true), // would be a 0.2s tail segment
	}

	plan := PlanSegments(keyframes, 20)
	if plan.Static {
		t.Fatal("expected a segmented plan")
	}
	assertTiles(t, plan.Segments, 20)
}

func TestPlanSegmentsCoversLeadBeforeFirstKeyframe(t *testing.T) {
	// First sample at 0.5s: its crop extends back to t=0.
	keyframes := []CropTimelinePoint{
		point(0.5, 100, 0, true),
		point(10, 300, 0, true),
	}

	plan := PlanSegments(keyframes, 20)
	if plan.Static {
		t.Fatal("expected a segmented plan")
	}
	assertTiles(t, plan.Segments, 20)
	if plan.Segments[0].Start != 0 {
		t.Errorf("first segment starts at %.3f, want 0", plan.Segments[0].Start)
	}
}

func TestPlanSegmentsEmptyTimeline(t *testing.T) {
	plan := PlanSegments(nil, 30)
	if !plan.Static {
		t.Fatal("empty keyframe list should fall back to static")
	}
}
