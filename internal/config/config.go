package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Output geometry and location.
	OutputDir    string
	TargetWidth  int
	TargetHeight int

	// Face detection. Disabled means every conversion uses a static
	// center crop.
	FaceDetection   bool
	DetectorBackend string // pigo | yunet | remote
	ModelPath       string
	ModelURL        string
	DetectorSocket  string

	TmpDir string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		OutputDir:       getEnv("OUTPUT_DIR", "output"),
		TargetWidth:     getEnvInt("TARGET_WIDTH", 1080),
		TargetHeight:    getEnvInt("TARGET_HEIGHT", 1920),
		FaceDetection:   getEnvBool("FACE_DETECTION", true),
		DetectorBackend: getEnv("DETECTOR_BACKEND", "pigo"),
		ModelPath:       getEnv("MODEL_PATH", "models/facefinder"),
		ModelURL:        getEnv("MODEL_URL", ""),
		DetectorSocket:  getEnv("DETECTOR_SOCKET", "/tmp/detector.sock"),
		TmpDir:          getEnv("TMP_DIR", "tmp"),
	}
}

func getEnv(k, d string) string {
	if val, ok := os.LookupEnv(k); ok {
		return val
	}
	return d
}

func getEnvInt(k string, d int) int {
	if val, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return d
}

func getEnvBool(k string, d bool) bool {
	if val, ok := os.LookupEnv(k); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return d
}
