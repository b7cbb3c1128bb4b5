package face

import (
	"fmt"
	"image"
	"io"
	"net"
	"time"

	"github.com/disintegration/imaging"
	"github.com/vmihailenco/msgpack/v5"
)

const remoteDialTimeout = 2 * time.Second

// RemoteBackend delegates detection to an external inference service over
// a unix socket, one msgpack-framed request per frame. Useful when a GPU
// sidecar runs the model.
type RemoteBackend struct {
	socketPath string
	timeout    time.Duration
}

// inferenceRequest carries one RGB frame, row-major, shape (H, W, 3).
type inferenceRequest struct {
	Height int    `msgpack:"h"`
	Width  int    `msgpack:"w"`
	Data   []byte `msgpack:"d"`
}

type remoteDetection struct {
	X          float32 `msgpack:"x"`
	Y          float32 `msgpack:"y"`
	Width      float32 `msgpack:"w"`
	Height     float32 `msgpack:"h"`
	Confidence float32 `msgpack:"c"`
}

type inferenceResponse struct {
	Detections  []remoteDetection `msgpack:"detections"`
	InferenceMs float32           `msgpack:"inference_ms"`
}

// NewRemoteBackend creates a backend talking to socketPath.
func NewRemoteBackend(socketPath string) *RemoteBackend {
	return &RemoteBackend{socketPath: socketPath, timeout: remoteDialTimeout}
}

// Load verifies the service is reachable.
func (b *RemoteBackend) Load() error {
	conn, err := net.DialTimeout("unix", b.socketPath, b.timeout)
	if err != nil {
		return fmt.Errorf("detector service unreachable at %s: %w", b.socketPath, err)
	}
	conn.Close()
	return nil
}

// Close is a no-op; connections are per-request.
func (b *RemoteBackend) Close() {}

// Detect ships the frame to the remote service and decodes its response.
func (b *RemoteBackend) Detect(img image.Image) ([]Detection, error) {
	conn, err := net.DialTimeout("unix", b.socketPath, b.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to detector service: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(b.timeout))

	bounds := img.Bounds()
	req := inferenceRequest{
		Height: bounds.Dy(),
		Width:  bounds.Dx(),
		Data:   rgbBytes(img),
	}
	payload, err := msgpack.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		cw.CloseWrite()
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp inferenceResponse
	if err := msgpack.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]Detection, len(resp.Detections))
	for i, d := range resp.Detections {
		out[i] = Detection{
			X:          float64(d.X),
			Y:          float64(d.Y),
			Width:      float64(d.Width),
			Height:     float64(d.Height),
			Confidence: float64(d.Confidence),
		}
	}
	return out, nil
}

// rgbBytes flattens the image into the packed RGB buffer the service
// expects.
func rgbBytes(img image.Image) []byte {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			out[(y*w+x)*3+0] = row[x*4+0]
			out[(y*w+x)*3+1] = row[x*4+1]
			out[(y*w+x)*3+2] = row[x*4+2]
		}
	}
	return out
}
