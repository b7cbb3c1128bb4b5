package face

import (
	"fmt"
	"image"
	"log"
	"math"
	"runtime"
	"sort"

	"github.com/disintegration/imaging"
	ort "github.com/yalue/onnxruntime_go"
)

const (
	yunetInputWidth  = 640
	yunetInputHeight = 640
	yunetStride      = 8
	yunetGridSize    = yunetInputWidth / yunetStride
	yunetAnchorCount = yunetGridSize * yunetGridSize

	yunetScoreThreshold = 0.7
	yunetNMSThreshold   = 0.3
)

// YuNetBackend detects faces with the YuNet ONNX model through
// onnxruntime. Heavier than pigo but considerably more accurate on small
// and rotated faces.
type YuNetBackend struct {
	modelPath string

	session     *ort.AdvancedSession
	inputTensor *ort.Tensor[float32]
	clsTensor   *ort.Tensor[float32]
	bboxTensor  *ort.Tensor[float32]
	anchors     [][2]float32
}

// NewYuNetBackend creates a backend for the model at modelPath.
func NewYuNetBackend(modelPath string) *YuNetBackend {
	return &YuNetBackend{modelPath: modelPath}
}

// Load initializes the onnxruntime environment and builds the session
// with the stride-8 classification and bbox outputs.
func (b *YuNetBackend) Load() error {
	libraryPath := "libonnxruntime.so"
	if runtime.GOOS == "windows" {
		libraryPath = "onnxruntime.dll"
	}
	ort.SetSharedLibraryPath(libraryPath)

	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	var err error
	b.inputTensor, err = ort.NewTensor(
		ort.NewShape(1, 3, yunetInputHeight, yunetInputWidth),
		make([]float32, 3*yunetInputHeight*yunetInputWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %w", err)
	}

	b.clsTensor, err = ort.NewEmptyTensor[float32](ort.NewShape(1, yunetAnchorCount, 1))
	if err != nil {
		return fmt.Errorf("failed to create cls tensor: %w", err)
	}
	b.bboxTensor, err = ort.NewEmptyTensor[float32](ort.NewShape(1, yunetAnchorCount, 4))
	if err != nil {
		return fmt.Errorf("failed to create bbox tensor: %w", err)
	}

	b.session, err = ort.NewAdvancedSession(
		b.modelPath,
		[]string{"input"},
		[]string{"cls_8", "bbox_8"},
		[]ort.Value{b.inputTensor},
		[]ort.Value{b.clsTensor, b.bboxTensor},
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create ONNX session: %w", err)
	}

	b.anchors = make([][2]float32, 0, yunetAnchorCount)
	for y := 0; y < yunetGridSize; y++ {
		for x := 0; x < yunetGridSize; x++ {
			b.anchors = append(b.anchors, [2]float32{
				(float32(x) + 0.5) * yunetStride,
				(float32(y) + 0.5) * yunetStride,
			})
		}
	}

	log.Printf("[YUNET] Session ready (%s, %d anchors)", b.modelPath, len(b.anchors))
	return nil
}

// Close destroys the session and tensors.
func (b *YuNetBackend) Close() {
	if b.session != nil {
		b.session.Destroy()
	}
	if b.inputTensor != nil {
		b.inputTensor.Destroy()
	}
	if b.clsTensor != nil {
		b.clsTensor.Destroy()
	}
	if b.bboxTensor != nil {
		b.bboxTensor.Destroy()
	}
	ort.DestroyEnvironment()
}

// Detect resizes the frame into the model input, runs inference, and
// decodes anchors back into source-image coordinates.
func (b *YuNetBackend) Detect(img image.Image) ([]Detection, error) {
	if b.session == nil {
		return nil, fmt.Errorf("yunet session not loaded")
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	resized := imaging.Resize(img, yunetInputWidth, yunetInputHeight, imaging.Linear)
	fillInputBGR(b.inputTensor.GetData(), resized)

	if err := b.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	dets := b.decode(float64(srcW)/yunetInputWidth, float64(srcH)/yunetInputHeight)
	return nonMaxSuppress(dets, yunetNMSThreshold), nil
}

// fillInputBGR writes an NCHW BGR float buffer from an NRGBA image.
func fillInputBGR(dst []float32, img *image.NRGBA) {
	plane := yunetInputHeight * yunetInputWidth
	for y := 0; y < yunetInputHeight; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < yunetInputWidth; x++ {
			i := y*yunetInputWidth + x
			dst[0*plane+i] = float32(row[x*4+2]) // B
			dst[1*plane+i] = float32(row[x*4+1]) // G
			dst[2*plane+i] = float32(row[x*4+0]) // R
		}
	}
}

// decode turns the raw model outputs into detections scaled back to the
// source frame.
func (b *YuNetBackend) decode(scaleX, scaleY float64) []Detection {
	clsData := b.clsTensor.GetData()
	bboxData := b.bboxTensor.GetData()

	var dets []Detection
	for i := 0; i < yunetAnchorCount; i++ {
		score := sigmoid(clsData[i])
		if score < yunetScoreThreshold {
			continue
		}

		// Offsets are in stride units relative to the anchor center.
		anchor := b.anchors[i]
		cx := anchor[0] + bboxData[i*4+0]*yunetStride
		cy := anchor[1] + bboxData[i*4+1]*yunetStride
		w := abs32(bboxData[i*4+2]) * yunetStride
		h := abs32(bboxData[i*4+3]) * yunetStride

		const minBox = 10
		if w < minBox || h < minBox || w > yunetInputWidth || h > yunetInputHeight {
			continue
		}

		x := cx - w/2
		y := cy - h/2
		if x < 0 || y < 0 || x+w > yunetInputWidth || y+h > yunetInputHeight {
			continue
		}

		dets = append(dets, Detection{
			X:          float64(x) * scaleX,
			Y:          float64(y) * scaleY,
			Width:      float64(w) * scaleX,
			Height:     float64(h) * scaleY,
			Confidence: float64(score),
		})
	}
	return dets
}

// nonMaxSuppress keeps the highest-confidence detection from each
// overlapping cluster.
func nonMaxSuppress(dets []Detection, iouThreshold float64) []Detection {
	if len(dets) == 0 {
		return dets
	}
	sort.Slice(dets, func(i, j int) bool { return dets[i].Confidence > dets[j].Confidence })

	used := make([]bool, len(dets))
	var keep []Detection
	for i := range dets {
		if used[i] {
			continue
		}
		keep = append(keep, dets[i])
		for j := i + 1; j < len(dets); j++ {
			if !used[j] && intersectionOverUnion(dets[i], dets[j]) > iouThreshold {
				used[j] = true
			}
		}
	}
	return keep
}

func intersectionOverUnion(a, b Detection) float64 {
	x1 := maxf(a.X, b.X)
	y1 := maxf(a.Y, b.Y)
	x2 := minf(a.X+a.Width, b.X+b.Width)
	y2 := minf(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	inter := (x2 - x1) * (y2 - y1)
	union := a.Width*a.Height + b.Width*b.Height - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
