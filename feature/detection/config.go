package detection

import "time"

// Device classes. Mobile devices capture slower and debounce longer.
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
)

// Config holds configuration for the detection loop and its boundaries.
type Config struct {
	// DecodeURL is the fallback HTTP recognition endpoint. Frames are
	// POSTed as multipart image bytes.
	DecodeURL string `mapstructure:"decode_url" default:"http://localhost:8000/api/detect-barcode"`
	// SnapshotURL is the camera snapshot endpoint polled by the frame
	// source in headless scan mode.
	SnapshotURL string `mapstructure:"snapshot_url" default:""`
	// Facing is the requested camera facing mode (environment, user).
	Facing string `mapstructure:"facing" default:"environment"`
	// DeviceClass selects the capture cadence and debounce window
	// (mobile, desktop).
	DeviceClass string `mapstructure:"device_class" default:"desktop"`
	// TimeoutSeconds bounds a single recognition call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
}

// CaptureInterval returns the frame capture cadence for the configured
// device class: mobile 2s, desktop 1.5s.
func (c Config) CaptureInterval() time.Duration {
	if c.DeviceClass == DeviceMobile {
		return 2 * time.Second
	}
	return 1500 * time.Millisecond
}

// DebounceWindow returns the minimum time between accepted detections
// of an identical raw value: mobile 1000ms, desktop 500ms.
func (c Config) DebounceWindow() time.Duration {
	if c.DeviceClass == DeviceMobile {
		return time.Second
	}
	return 500 * time.Millisecond
}

// Timeout returns the recognition call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
