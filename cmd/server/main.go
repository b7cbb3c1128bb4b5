package main

import (
	"log"

	"github.com/devansh-m12/faceify/internal/api"
	"github.com/devansh-m12/faceify/internal/config"
	"github.com/devansh-m12/faceify/internal/metrics"
	"github.com/devansh-m12/faceify/internal/services/convert"
	"github.com/devansh-m12/faceify/internal/services/face"
	"github.com/devansh-m12/faceify/internal/services/media"
	"github.com/devansh-m12/faceify/internal/workers"
)

func main() {
	cfg := config.Load()

	detector := face.NewService(buildBackend(cfg))
	if cfg.FaceDetection {
		if err := provisionAndInit(cfg, detector); err != nil {
			// Non-fatal: conversions degrade to static center cropping.
			log.Printf("Warning: face detection disabled (%v)", err)
		} else {
			defer detector.Close()
			log.Printf("Face detection ready (%s backend)", cfg.DetectorBackend)
		}
	}

	m := metrics.New()
	engine := media.NewEngine(cfg.TmpDir)
	converter := convert.New(engine, detector, m, convert.Options{
		OutputDir:     cfg.OutputDir,
		TargetWidth:   cfg.TargetWidth,
		TargetHeight:  cfg.TargetHeight,
		FaceDetection: cfg.FaceDetection,
	})

	workers.StartWorker(converter)

	server := api.NewServer(converter, m)
	log.Println("Server running on http://localhost:" + cfg.Port)
	if err := server.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func buildBackend(cfg *config.Config) face.Backend {
	switch cfg.DetectorBackend {
	case "yunet":
		return face.NewYuNetBackend(cfg.ModelPath)
	case "remote":
		return face.NewRemoteBackend(cfg.DetectorSocket)
	default:
		return face.NewPigoBackend(cfg.ModelPath)
	}
}

func provisionAndInit(cfg *config.Config, detector *face.Service) error {
	// The remote backend owns its own weights.
	if cfg.DetectorBackend != "remote" {
		if err := face.EnsureModel(cfg.ModelPath, cfg.ModelURL); err != nil {
			return err
		}
	}
	return detector.Initialize()
}
