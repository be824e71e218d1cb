package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.ProcessingDelay)
	assert.Equal(t, CameraDeviceFeed, cfg.CameraDevice)
	assert.Equal(t, 1280, cfg.CameraIdealWidth)
	assert.Equal(t, 720, cfg.CameraIdealHeight)
	assert.Equal(t, 80, cfg.CaptureJPEGQuality)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":             "9090",
		"PROCESSING_DELAY": "250ms",
		"CAMERA_DEVICE":    "synthetic",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 250*time.Millisecond, cfg.ProcessingDelay)
	assert.Equal(t, CameraDeviceSynthetic, cfg.CameraDevice)
}

func TestLoad_RejectsUnknownCameraDevice(t *testing.T) {
	_, err := LoadFrom(map[string]string{"CAMERA_DEVICE": "webcam"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAMERA_DEVICE")
}

func TestValidate_JPEGQualityRange(t *testing.T) {
	cfg := Config{
		Port:                 "8080",
		SessionTTL:           time.Minute,
		SessionSweepInterval: time.Second,
		CameraDevice:         CameraDeviceFeed,
		CameraIdealWidth:     1280,
		CameraIdealHeight:    720,
		CaptureJPEGQuality:   0,
	}
	require.Error(t, cfg.Validate())

	cfg.CaptureJPEGQuality = 80
	require.NoError(t, cfg.Validate())
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("SESSION_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}
