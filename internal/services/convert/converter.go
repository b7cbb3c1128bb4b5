package convert

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devansh-m12/faceify/internal/metrics"
	"github.com/devansh-m12/faceify/internal/services/crop"
	"github.com/devansh-m12/faceify/internal/services/face"
)

// How many segment renders may run against ffmpeg at once. Concatenation
// waits for all of them.
const maxConcurrentRenders = 4

// MediaEngine is the external pixel machinery: probing, frame extraction,
// scene detection, rendering, and concatenation.
type MediaEngine interface {
	Probe(path string) (crop.VideoInfo, error)
	ExtractFrame(path string, timestamp float64) (string, error)
	SceneBoundaries(path string) ([]float64, error)
	RenderSegment(input, output string, seg crop.Segment, window crop.CropRect, targetW, targetH int) error
	RenderStatic(input, output string, window crop.CropRect, targetW, targetH int) error
	Concat(files []string, output string) error
}

// Detector is the external face detector, initialized once at boot.
type Detector interface {
	IsReady() bool
	DetectFile(path string) ([]face.Detection, error)
}

// Options configures one conversion.
type Options struct {
	OutputDir     string
	TargetWidth   int
	TargetHeight  int
	FaceDetection bool
}

// Result is what callers get back. FirstFrameFaces is the face list at
// the first sampled timestamp, kept for inspection.
type Result struct {
	OriginalPath    string           `json:"originalPath"`
	OutputPath      string           `json:"outputPath"`
	FirstFrameFaces []face.Detection `json:"faces"`
}

// Converter runs the full landscape-to-vertical pipeline.
type Converter struct {
	engine   MediaEngine
	detector Detector
	metrics  *metrics.Metrics
	opts     Options
}

// New wires a converter from its collaborators.
func New(engine MediaEngine, detector Detector, m *metrics.Metrics, opts Options) *Converter {
	return &Converter{engine: engine, detector: detector, metrics: m, opts: opts}
}

// Convert turns the landscape video at inputPath into a vertical one.
// Internal stages degrade toward a static center crop instead of
// aborting; only a missing input or a failing fallback render is fatal.
func (c *Converter) Convert(ctx context.Context, inputPath string) (*Result, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("input not readable: %w", err)
	}
	c.metrics.ConversionsStarted.Inc()

	video, err := c.engine.Probe(inputPath)
	if err != nil {
		c.metrics.ConversionsFailed.Inc()
		return nil, fmt.Errorf("probe failed: %w", err)
	}

	outputPath, err := c.prepareOutput(inputPath)
	if err != nil {
		c.metrics.ConversionsFailed.Inc()
		return nil, err
	}

	window := crop.VerticalCrop(video, c.opts.TargetWidth, c.opts.TargetHeight)
	result := &Result{OriginalPath: inputPath, OutputPath: outputPath}

	if !c.opts.FaceDetection || !c.detector.IsReady() {
		log.Printf("[CONVERT] Face detection unavailable, using static center crop")
		if err := c.renderStatic(outputPath, inputPath, window); err != nil {
			return nil, err
		}
		c.metrics.ConversionsCompleted.Inc()
		return result, nil
	}

	timeline, firstFaces := c.analyzeTimeline(inputPath, video)
	result.FirstFrameFaces = firstFaces

	if !crop.HasReliablePoint(timeline) {
		log.Printf("[CONVERT] No faces found anywhere, using static center crop")
		c.metrics.StaticFallbacks.Inc()
		if err := c.renderStatic(outputPath, inputPath, window); err != nil {
			return nil, err
		}
		c.metrics.ConversionsCompleted.Inc()
		return result, nil
	}

	plan := crop.BuildPlan(timeline, video, c.opts.TargetWidth, c.opts.TargetHeight)

	if plan.Static {
		if err := c.renderStatic(outputPath, inputPath, plan.StaticCrop); err != nil {
			return nil, err
		}
		c.metrics.ConversionsCompleted.Inc()
		return result, nil
	}

	if err := c.renderSegmented(ctx, inputPath, outputPath, plan, window); err != nil {
		// Segmented rendering failed somewhere; fall back to one static
		// crop anchored on the first timestamp's faces.
		log.Printf("[CONVERT] Segmented render failed (%v), falling back to static crop", err)
		c.metrics.StaticFallbacks.Inc()

		fallback := crop.Aggregate(window, face.Boxes(firstFaces), video)
		if err := c.renderStatic(outputPath, inputPath, fallback); err != nil {
			return nil, fmt.Errorf("fallback render failed: %w", err)
		}
	}

	c.metrics.ConversionsCompleted.Inc()
	return result, nil
}

// prepareOutput creates the output directory and derives the output file
// path from the input name.
func (c *Converter) prepareOutput(inputPath string) (string, error) {
	if err := os.MkdirAll(c.opts.OutputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(c.opts.OutputDir, base+"_vertical.mp4"), nil
}

// analyzeTimeline samples the video and runs face detection sequentially
// per frame: one frame extracted, detected, deleted before the next. The
// detector is a shared single-instance resource, so no parallelism here.
func (c *Converter) analyzeTimeline(inputPath string, video crop.VideoInfo) ([]crop.TimelinePoint, []face.Detection) {
	samples := crop.SampleTimestamps(video.Duration, func() ([]float64, error) {
		return c.engine.SceneBoundaries(inputPath)
	})

	timeline := make([]crop.TimelinePoint, 0, len(samples))
	var firstFaces []face.Detection

	for i, ts := range samples {
		dets := c.detectAt(inputPath, ts)
		if i == 0 {
			firstFaces = dets
		}
		c.metrics.FramesAnalyzed.Inc()
		c.metrics.FacesDetected.Add(float64(len(dets)))

		timeline = append(timeline, crop.TimelinePoint{
			Timestamp: ts,
			Faces:     face.Boxes(dets),
		})
	}
	return timeline, firstFaces
}

// detectAt extracts one frame, detects faces on it, and removes it. Every
// failure here is a per-frame miss, never an error: the gap filler deals
// with empty points.
func (c *Converter) detectAt(inputPath string, ts float64) []face.Detection {
	framePath, err := c.engine.ExtractFrame(inputPath, ts)
	if err != nil {
		log.Printf("[CONVERT] Frame extraction at %.3fs failed: %v", ts, err)
		return nil
	}
	defer func() {
		if err := os.Remove(framePath); err != nil {
			log.Printf("[CONVERT] Frame cleanup failed: %v", err)
		}
	}()

	started := time.Now()
	dets, err := c.detector.DetectFile(framePath)
	c.metrics.DetectionSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		log.Printf("[CONVERT] Detection at %.3fs failed: %v", ts, err)
		return nil
	}
	return dets
}

// renderStatic renders the whole video with one crop window.
func (c *Converter) renderStatic(outputPath, inputPath string, window crop.CropRect) error {
	if err := c.engine.RenderStatic(inputPath, outputPath, window, c.opts.TargetWidth, c.opts.TargetHeight); err != nil {
		c.metrics.ConversionsFailed.Inc()
		return fmt.Errorf("static render failed: %w", err)
	}
	return nil
}

// renderSegmented renders every plan segment concurrently, waits for all
// of them, then concatenates the clips in order with a stream copy. Every
// conversion gets its own scratch directory for the clips, so in-flight
// conversions never see each other's files.
func (c *Converter) renderSegmented(ctx context.Context, inputPath, outputPath string, plan crop.Plan, window crop.CropRect) error {
	scratchDir, err := os.MkdirTemp(c.opts.OutputDir, "segments_")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		// Swallowed so cleanup never masks the conversion result.
		if err := os.RemoveAll(scratchDir); err != nil {
			log.Printf("[CONVERT] Scratch cleanup failed: %v", err)
		}
	}()

	clips := make([]string, len(plan.Segments))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRenders)
	for i, seg := range plan.Segments {
		i, seg := i, seg
		clips[i] = filepath.Join(scratchDir, fmt.Sprintf("segment_%03d.mp4", i))
		g.Go(func() error {
			started := time.Now()
			err := c.engine.RenderSegment(inputPath, clips[i], seg, window, c.opts.TargetWidth, c.opts.TargetHeight)
			c.metrics.RenderSeconds.Observe(time.Since(started).Seconds())
			if err == nil {
				c.metrics.SegmentsRendered.Inc()
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return c.engine.Concat(clips, outputPath)
}
