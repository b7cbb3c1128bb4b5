package face

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const provisionTimeout = 2 * time.Minute

// EnsureModel makes sure the detector weights exist at path, downloading
// them from url when missing. Provisioning is deliberately separate from
// detection: it happens once at boot, succeeds or fails deterministically,
// and detection never touches the network.
func EnsureModel(path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if url == "" {
		return fmt.Errorf("model %s missing and no download URL configured", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	log.Printf("[MODEL] Downloading %s", url)
	client := &http.Client{Timeout: provisionTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("model download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model download returned status %d", resp.StatusCode)
	}

	// Download to a temp file first so a partial fetch never looks like a
	// cached model.
	tmp, err := os.CreateTemp(filepath.Dir(path), "model-*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("model download interrupted: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to finalize download: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move model into place: %w", err)
	}
	log.Printf("[MODEL] Cached at %s", path)
	return nil
}
