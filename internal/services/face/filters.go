package face

import "log"

const (
	// Size constraints relative to frame height.
	minFaceHeightRatio = 0.03
	maxFaceHeightRatio = 0.90

	// A face box much wider or narrower than it is tall is a false
	// positive for every backend we run.
	minBoxAspectRatio = 0.5
	maxBoxAspectRatio = 1.6

	// More simultaneous detections than this means the detector is
	// hallucinating; treat the frame as a miss.
	maxFacesPerFrame = 20
)

// FilterDetections removes implausible boxes before aggregation: wrong
// size for the frame, wrong shape, or an absurd count.
func FilterDetections(dets []Detection, frameWidth, frameHeight int) []Detection {
	if len(dets) > maxFacesPerFrame {
		log.Printf("[FILTER] %d detections (> %d), treating frame as a miss", len(dets), maxFacesPerFrame)
		return nil
	}

	filtered := make([]Detection, 0, len(dets))
	for _, det := range dets {
		if !plausibleSize(det, frameHeight) || !plausibleShape(det) {
			continue
		}
		filtered = append(filtered, det)
	}

	if len(filtered) < len(dets) {
		log.Printf("[FILTER] Kept %d/%d detections", len(filtered), len(dets))
	}
	return filtered
}

func plausibleSize(det Detection, frameHeight int) bool {
	minH := float64(frameHeight) * minFaceHeightRatio
	maxH := float64(frameHeight) * maxFaceHeightRatio
	return det.Height >= minH && det.Height <= maxH
}

func plausibleShape(det Detection) bool {
	if det.Height <= 0 {
		return false
	}
	aspect := det.Width / det.Height
	return aspect >= minBoxAspectRatio && aspect <= maxBoxAspectRatio
}
