package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/devansh-m12/faceify/internal/metrics"
	"github.com/devansh-m12/faceify/internal/services/convert"
	"github.com/devansh-m12/faceify/internal/services/crop"
	"github.com/devansh-m12/faceify/internal/services/face"
)

type noopEngine struct{}

func (noopEngine) Probe(string) (crop.VideoInfo, error) {
	return crop.VideoInfo{Width: 1920, Height: 1080, Duration: 10}, nil
}
func (noopEngine) ExtractFrame(string, float64) (string, error) { return "", nil }
func (noopEngine) SceneBoundaries(string) ([]float64, error)    { return nil, nil }
func (noopEngine) RenderSegment(string, string, crop.Segment, crop.CropRect, int, int) error {
	return nil
}
func (noopEngine) RenderStatic(string, string, crop.CropRect, int, int) error { return nil }
func (noopEngine) Concat([]string, string) error                              { return nil }

type noopDetector struct{}

func (noopDetector) IsReady() bool                               { return false }
func (noopDetector) DetectFile(string) ([]face.Detection, error) { return nil, nil }

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	m := metrics.New()
	converter := convert.New(noopEngine{}, noopDetector{}, m, convert.Options{
		OutputDir:    t.TempDir(),
		TargetWidth:  1080,
		TargetHeight: 1920,
	})

	app := fiber.New()
	RegisterHealthRoutes(app)
	RegisterConvertRoutes(app, converter)
	RegisterMetricsRoute(app, m)
	return app
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthRoute(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("/health status = %d", resp.StatusCode)
	}
}

func TestMetricsRoute(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("/metrics status = %d", resp.StatusCode)
	}
}

func TestConvertRejectsInvalidBody(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(jsonReq(http.MethodPost, "/convert", "not json"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("invalid body status = %d, want 400", resp.StatusCode)
	}
}

func TestConvertRejectsMissingPath(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(jsonReq(http.MethodPost, "/convert", `{}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("missing path status = %d, want 400", resp.StatusCode)
	}
}

func TestConvertUnreadableInputFails(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(jsonReq(http.MethodPost, "/convert", `{"path":"/no/such/input.mp4"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("unreadable input status = %d, want 500", resp.StatusCode)
	}
}

func TestConvertAsyncQueues(t *testing.T) {
	app := testApp(t)
	resp, err := app.Test(jsonReq(http.MethodPost, "/convert/async", `{"path":"queued.mp4"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 202 {
		t.Errorf("async enqueue status = %d, want 202", resp.StatusCode)
	}
}
