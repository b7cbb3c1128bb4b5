package workers

import (
	"context"
	"log"

	"github.com/devansh-m12/faceify/internal/services/convert"
)

// ConvertJob is one queued conversion request.
type ConvertJob struct {
	InputPath string
}

// JobQueue buffers async conversion requests for the background worker.
var JobQueue = make(chan ConvertJob, 32)

// Enqueue adds a job without blocking; returns false when the queue is
// full.
func Enqueue(job ConvertJob) bool {
	select {
	case JobQueue <- job:
		return true
	default:
		return false
	}
}

// StartWorker drains the queue sequentially. Conversions are heavy on
// ffmpeg and the detector, so one at a time.
func StartWorker(converter *convert.Converter) {
	go func() {
		for job := range JobQueue {
			log.Println("[WORKER] Processing", job.InputPath)

			res, err := converter.Convert(context.Background(), job.InputPath)
			if err != nil {
				log.Printf("[WORKER] Conversion failed for %s: %v", job.InputPath, err)
				continue
			}
			log.Printf("[WORKER] Done: %s", res.OutputPath)
		}
	}()
}
