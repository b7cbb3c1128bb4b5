package crop

// FaceBox is a detected face bounding box in source-video pixel coordinates.
type FaceBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the geometric center of the box.
func (b FaceBox) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Area returns the box area in square pixels.
func (b FaceBox) Area() float64 {
	return b.Width * b.Height
}

// TimelinePoint is one sampled frame: a timestamp plus whatever faces the
// detector found there. Faces may be empty on a detection miss.
type TimelinePoint struct {
	Timestamp float64
	Faces     []FaceBox
}

// CropRect is a crop window in source pixels. Width/Height always match the
// target aspect ratio and never exceed the source dimensions.
type CropRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// CropTimelinePoint anchors one crop position at one timestamp. Reliable
// marks positions that came from an actual detection, as opposed to ones
// filled in by interpolation.
type CropTimelinePoint struct {
	Timestamp float64
	Crop      CropRect
	Reliable  bool
}

// Segment is a contiguous time range rendered with one fixed crop position.
// Width/height are implied by the plan's crop dimensions.
type Segment struct {
	Start    float64
	Duration float64
	CropX    int
	CropY    int
}

// Plan is the Segment Planner output. Static means the whole video gets a
// single crop (no segmentation); otherwise Segments tile [0, duration).
type Plan struct {
	Static     bool
	StaticCrop CropRect
	Segments   []Segment
}

// VideoInfo is the probed source geometry, immutable for a conversion.
type VideoInfo struct {
	Width    int
	Height   int
	Duration float64
}
