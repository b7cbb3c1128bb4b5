package face

import (
	"fmt"
	"image"
	"log"
	"os"

	pigo "github.com/esimov/pigo/core"
)

const (
	pigoMinSize      = 20
	pigoMaxSize      = 1000
	pigoShiftFactor  = 0.1
	pigoScaleFactor  = 1.1
	pigoIoUThreshold = 0.2

	// Cascade quality score below which detections are discarded.
	pigoQualityThreshold = 5.0
)

// PigoBackend detects faces with the pure-Go pigo cascade classifier. No
// CGO and no external runtime, which makes it the default backend.
type PigoBackend struct {
	cascadePath string
	classifier  *pigo.Pigo
}

// NewPigoBackend creates a backend reading its cascade from cascadePath.
func NewPigoBackend(cascadePath string) *PigoBackend {
	return &PigoBackend{cascadePath: cascadePath}
}

// Load reads and unpacks the cascade file.
func (b *PigoBackend) Load() error {
	cascade, err := os.ReadFile(b.cascadePath)
	if err != nil {
		return fmt.Errorf("failed to read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return fmt.Errorf("failed to unpack cascade: %w", err)
	}

	b.classifier = classifier
	log.Printf("[PIGO] Cascade loaded from %s", b.cascadePath)
	return nil
}

// Close drops the classifier.
func (b *PigoBackend) Close() {
	b.classifier = nil
}

// Detect runs the cascade over a grayscale copy of the image and returns
// quality-filtered, clustered detections in image coordinates.
func (b *PigoBackend) Detect(img image.Image) ([]Detection, error) {
	if b.classifier == nil {
		return nil, fmt.Errorf("pigo cascade not loaded")
	}

	bounds := img.Bounds()
	params := pigo.CascadeParams{
		MinSize:     pigoMinSize,
		MaxSize:     pigoMaxSize,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: pigoScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: grayscalePixels(img),
			Rows:   bounds.Dy(),
			Cols:   bounds.Dx(),
			Dim:    bounds.Dx(),
		},
	}

	dets := b.classifier.RunCascade(params, 0.0)
	dets = b.classifier.ClusterDetections(dets, pigoIoUThreshold)

	var out []Detection
	for _, det := range dets {
		if det.Q < pigoQualityThreshold {
			continue
		}
		// Pigo reports a center (Row, Col) and a radius (Scale).
		size := float64(det.Scale) * 2
		out = append(out, Detection{
			X:          float64(det.Col) - float64(det.Scale),
			Y:          float64(det.Row) - float64(det.Scale),
			Width:      size,
			Height:     size,
			Confidence: float64(det.Q) / 100.0,
		})
	}
	return out, nil
}

// grayscalePixels flattens an image into the row-major gray buffer pigo
// expects.
func grayscalePixels(img image.Image) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := make([]uint8, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray[y*w+x] = uint8((r*299 + g*587 + b*114) / 1000 >> 8)
		}
	}
	return gray
}
