package face

import "github.com/devansh-m12/faceify/internal/services/crop"

// Detection is one face found in a frame, in frame pixel coordinates.
type Detection struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Confidence float64
}

// Box converts a detection to the crop engine's bounding-box type.
func (d Detection) Box() crop.FaceBox {
	return crop.FaceBox{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
}

// Boxes converts a detection list, dropping the confidence scores the
// crop engine does not use.
func Boxes(dets []Detection) []crop.FaceBox {
	if len(dets) == 0 {
		return nil
	}
	out := make([]crop.FaceBox, len(dets))
	for i, d := range dets {
		out[i] = d.Box()
	}
	return out
}
