package crop

import "math"

// VerticalCrop computes the fixed crop dimensions for a video: as tall as
// the source allows at the target aspect ratio. Normally the crop spans the
// full source height; if the source is too narrow for that, the crop spans
// the full width instead and gives up height.
func VerticalCrop(video VideoInfo, targetW, targetH int) CropRect {
	aspect := float64(targetW) / float64(targetH)

	w := int(math.Round(float64(video.Height) * aspect))
	h := video.Height
	if w > video.Width {
		w = video.Width
		h = int(math.Round(float64(video.Width) / aspect))
	}

	return CropRect{
		X:      (video.Width - w) / 2,
		Y:      (video.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// CenteredAt returns the crop window repositioned so its center sits at
// (cx, cy), clamped so the window stays inside the frame.
func (c CropRect) CenteredAt(cx, cy float64, video VideoInfo) CropRect {
	x := int(math.Round(cx - float64(c.Width)/2))
	y := int(math.Round(cy - float64(c.Height)/2))
	return CropRect{
		X:      clampInt(x, 0, video.Width-c.Width),
		Y:      clampInt(y, 0, video.Height-c.Height),
		Width:  c.Width,
		Height: c.Height,
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, v))
}
