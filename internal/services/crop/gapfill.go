package crop

import (
	"log"
	"math"
)

// FillGaps rewrites the crop position of every unreliable point using the
// nearest reliable neighbors. Only original detections count as anchors: a
// filled point never anchors another point. Points stay untouched when no
// reliable point exists anywhere (the centered default from aggregation
// holds).
func FillGaps(points []CropTimelinePoint) []CropTimelinePoint {
	filled := 0
	for i := range points {
		if points[i].Reliable {
			continue
		}

		before := nearestReliable(points, i, -1)
		after := nearestReliable(points, i, +1)

		switch {
		case before >= 0 && after >= 0:
			points[i].Crop = interpolateCrop(points[before], points[after], points[i].Timestamp)
			filled++
		case before >= 0:
			points[i].Crop = points[before].Crop
			filled++
		case after >= 0:
			points[i].Crop = points[after].Crop
			filled++
		}
	}
	if filled > 0 {
		log.Printf("[GAPFILL] Filled %d of %d points", filled, len(points))
	}
	return points
}

// nearestReliable walks from index i in the given direction and returns
// the index of the first reliable point, or -1.
func nearestReliable(points []CropTimelinePoint, i, dir int) int {
	for j := i + dir; j >= 0 && j < len(points); j += dir {
		if points[j].Reliable {
			return j
		}
	}
	return -1
}

// interpolateCrop linearly interpolates x,y between two anchor points by
// time fraction. Dimensions are identical on every point, so only the
// position moves.
func interpolateCrop(a, b CropTimelinePoint, t float64) CropRect {
	span := b.Timestamp - a.Timestamp
	if span <= 0 {
		return a.Crop
	}
	frac := (t - a.Timestamp) / span

	c := a.Crop
	c.X = a.Crop.X + int(math.Round(frac*float64(b.Crop.X-a.Crop.X)))
	c.Y = a.Crop.Y + int(math.Round(frac*float64(b.Crop.Y-a.Crop.Y)))
	return c
}
