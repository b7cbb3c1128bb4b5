package face

import (
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/disintegration/imaging"
)

// Backend runs face detection on a decoded image. Implementations hold
// the model state and are not safe for concurrent Detect calls; the
// pipeline runs detection sequentially.
type Backend interface {
	Load() error
	Detect(img image.Image) ([]Detection, error)
	Close()
}

// Service wraps a detection backend behind an explicit, idempotent
// initialization contract. One Service is constructed at boot and passed
// by reference into the pipeline; model weights load at most once per
// process lifetime.
type Service struct {
	backend Backend

	mu      sync.Mutex
	loaded  bool
	loadErr error
}

// NewService creates an uninitialized detector service.
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Initialize loads the backend's model. Safe to call repeatedly and from
// multiple goroutines; only the first call does work, later calls return
// the original result.
func (s *Service) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.loadErr
	}
	s.loaded = true
	s.loadErr = s.backend.Load()
	if s.loadErr != nil {
		log.Printf("[DETECTOR] Model load failed: %v", s.loadErr)
	}
	return s.loadErr
}

// IsReady reports whether the model loaded successfully.
func (s *Service) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.loadErr == nil
}

// Close releases backend resources.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded && s.loadErr == nil {
		s.backend.Close()
	}
	s.loaded = false
	s.loadErr = fmt.Errorf("detector closed")
}

// DetectFile decodes a frame image from disk, runs detection, and filters
// out implausible boxes.
func (s *Service) DetectFile(path string) ([]Detection, error) {
	if !s.IsReady() {
		return nil, fmt.Errorf("detector not initialized")
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}

	dets, err := s.backend.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	bounds := img.Bounds()
	return FilterDetections(dets, bounds.Dx(), bounds.Dy()), nil
}
