package crop

import (
	"errors"
	"testing"
)

func assertStrictlyIncreasing(t *testing.T, ts []float64) {
	t.Helper()
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			t.Fatalf("timestamps not strictly increasing at %d: %v", i, ts)
		}
	}
}

func contains(ts []float64, v float64) bool {
	for _, t := range ts {
		if t > v-0.001 && t < v+0.001 {
			return true
		}
	}
	return false
}

func TestSampleTimestampsNoBoundaries(t *testing.T) {
	ts := SampleTimestamps(100, func() ([]float64, error) { return nil, nil })

	if !contains(ts, 0.5) {
		t.Errorf("missing start anchor 0.5: %v", ts)
	}
	if !contains(ts, 98.0) {
		t.Errorf("missing end anchor 98.0: %v", ts)
	}
	if len(ts) < minSampleCount || len(ts) > maxSampleCount {
		t.Errorf("sample count %d outside [%d,%d]", len(ts), minSampleCount, maxSampleCount)
	}
	assertStrictlyIncreasing(t, ts)
}

func TestSampleTimestampsBoundaryFailure(t *testing.T) {
	ts := SampleTimestamps(100, func() ([]float64, error) {
		return nil, errors.New("scene detection exploded")
	})

	// Uniform fallback: anchors plus one sample every 15s.
	if !contains(ts, 0.5) || !contains(ts, 98.0) {
		t.Errorf("anchors missing after fallback: %v", ts)
	}
	if !contains(ts, 15.0) || !contains(ts, 90.0) {
		t.Errorf("uniform samples missing after fallback: %v", ts)
	}
	assertStrictlyIncreasing(t, ts)
}

func TestSampleTimestampsDownsamplesLargeBoundarySets(t *testing.T) {
	many := make([]float64, 0, 100)
	for i := 1; i <= 100; i++ {
		many = append(many, float64(i))
	}
	ts := SampleTimestamps(200, func() ([]float64, error) { return many, nil })

	if len(ts) > maxSampleCount {
		t.Fatalf("sample count %d exceeds maximum %d", len(ts), maxSampleCount)
	}
	if ts[0] != 0.5 {
		t.Errorf("first sample %v, want 0.5 (anchor preserved)", ts[0])
	}
	if ts[len(ts)-1] != 198.0 {
		t.Errorf("last sample %v, want 198.0 (anchor preserved)", ts[len(ts)-1])
	}
	assertStrictlyIncreasing(t, ts)
}

func TestSampleTimestampsShortVideo(t *testing.T) {
	ts := SampleTimestamps(1.0, func() ([]float64, error) { return nil, nil })

	if len(ts) < minSampleCount {
		t.Errorf("sample count %d below minimum %d", len(ts), minSampleCount)
	}
	for _, v := range ts {
		if v < 0 || v > 1.0 {
			t.Errorf("sample %v outside [0, 1.0]", v)
		}
	}
	assertStrictlyIncreasing(t, ts)
}
