package crop

import (
	"log"
	"math"
)

const (
	// Faces below this fraction of the largest face's area are treated as
	// background and excluded from the centroid.
	minRelativeFaceArea = 0.4

	// Centrality decays linearly from 1.0 at the frame center down to
	// this floor at the far corner, halving a peripheral face's weight.
	minCentralityWeight = 0.5
)

// Aggregate reduces one timestamp's face list to a single crop rectangle
// anchored on the focus point. The crop dimensions come from the window
// argument (fixed per video); only the position varies.
func Aggregate(window CropRect, faces []FaceBox, video VideoInfo) CropRect {
	switch len(faces) {
	case 0:
		// Center crop. Upstream may still replace this via interpolation
		// when other timestamps did see faces.
		return window.CenteredAt(float64(video.Width)/2, float64(video.Height)/2, video)
	case 1:
		return cropAroundFace(window, faces[0], video)
	default:
		kept := dropMinorFaces(faces)
		if len(kept) == 1 {
			return cropAroundFace(window, kept[0], video)
		}
		cx, cy := weightedCentroid(kept, video)
		return window.CenteredAt(cx, cy, video)
	}
}

// cropAroundFace centers the window on the face, then shifts it minimally
// so the whole bounding box fits inside whenever the window is big enough
// to contain it.
func cropAroundFace(window CropRect, face FaceBox, video VideoInfo) CropRect {
	cx, cy := face.Center()
	c := window.CenteredAt(cx, cy, video)

	if face.Width <= float64(c.Width) {
		c.X = shiftToContain(c.X, c.Width, face.X, face.Width, video.Width)
	}
	if face.Height <= float64(c.Height) {
		c.Y = shiftToContain(c.Y, c.Height, face.Y, face.Height, video.Height)
	}
	return c
}

// shiftToContain nudges a window along one axis until [lo, lo+size] is
// inside it, staying within [0, bound].
func shiftToContain(pos, size int, lo, loSize float64, bound int) int {
	p := float64(pos)
	if lo < p {
		p = lo
	}
	if hi := lo + loSize; hi > p+float64(size) {
		p = hi - float64(size)
	}
	return clampInt(int(math.Round(p)), 0, bound-size)
}

// dropMinorFaces removes faces whose area falls below minRelativeFaceArea
// of the largest face. Incidental background faces would otherwise drag
// the centroid away from the primary subject.
func dropMinorFaces(faces []FaceBox) []FaceBox {
	largest := 0.0
	for _, f := range faces {
		if a := f.Area(); a > largest {
			largest = a
		}
	}

	kept := make([]FaceBox, 0, len(faces))
	for _, f := range faces {
		if f.Area() >= largest*minRelativeFaceArea {
			kept = append(kept, f)
		}
	}
	if len(kept) < len(faces) {
		log.Printf("[AGGREGATE] Dropped %d minor face(s) of %d", len(faces)-len(kept), len(faces))
	}
	return kept
}

// weightedCentroid combines face centers with weight = area × centrality,
// so larger and more central faces dominate the framing decision.
func weightedCentroid(faces []FaceBox, video VideoInfo) (float64, float64) {
	frameCX := float64(video.Width) / 2
	frameCY := float64(video.Height) / 2
	maxDist := math.Hypot(frameCX, frameCY)

	var sumW, sumX, sumY float64
	for _, f := range faces {
		cx, cy := f.Center()
		dist := math.Hypot(cx-frameCX, cy-frameCY)
		centrality := 1.0 - (1.0-minCentralityWeight)*math.Min(dist/maxDist, 1.0)
		w := f.Area() * centrality

		sumW += w
		sumX += cx * w
		sumY += cy * w
	}
	if sumW == 0 {
		return frameCX, frameCY
	}
	return sumX / sumW, sumY / sumW
}
