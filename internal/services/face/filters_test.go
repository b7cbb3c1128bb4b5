package face

import "testing"

func TestFilterDetectionsRejectsImplausible(t *testing.T) {
	dets := []Detection{
		{X: 100, Y: 100, Width: 120, Height: 130, Confidence: 0.9}, // plausible
		{X: 0, Y: 0, Width: 300, Height: 10, Confidence: 0.9},      // too flat
		{X: 0, Y: 0, Width: 4, Height: 5, Confidence: 0.9},         // too small
		{X: 0, Y: 0, Width: 900, Height: 1050, Confidence: 0.9},    // fills the frame
	}

	filtered := FilterDetections(dets, 1920, 1080)
	if len(filtered) != 1 {
		t.Fatalf("kept %d detections, want 1: %+v", len(filtered), filtered)
	}
	if filtered[0].Width != 120 {
		t.Errorf("wrong detection kept: %+v", filtered[0])
	}
}

func TestFilterDetectionsHallucinationGuard(t *testing.T) {
	dets := make([]Detection, maxFacesPerFrame+1)
	for i := range dets {
		dets[i] = Detection{X: float64(i * 10), Y: 100, Width: 100, Height: 100}
	}

	if got := FilterDetections(dets, 1920, 1080); got != nil {
		t.Errorf("expected frame treated as miss, got %d detections", len(got))
	}
}

func TestBoxesConversion(t *testing.T) {
	dets := []Detection{{X: 1, Y: 2, Width: 3, Height: 4, Confidence: 0.5}}
	boxes := Boxes(dets)
	if len(boxes) != 1 || boxes[0].X != 1 || boxes[0].Height != 4 {
		t.Errorf("conversion wrong: %+v", boxes)
	}
	if Boxes(nil) != nil {
		t.Error("empty input should convert to nil")
	}
}
