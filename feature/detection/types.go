package detection

import "time"

// BoundingBox locates a detected barcode within the source frame.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Detection is one decoded barcode from a single frame. It is ephemeral:
// consumed by the pipeline or dropped.
type Detection struct {
	RawValue     string       `json:"rawValue"`
	Format       string       `json:"format"`
	BoundingBox  *BoundingBox `json:"boundingBox,omitempty"`
	Confidence   float64      `json:"confidence"`
	DecodeMethod string       `json:"decodeMethod,omitempty"`
	DetectedAt   time.Time    `json:"detectedAt"`
}

// Candidate is a debounced detection forwarded to the scan pipeline.
type Candidate struct {
	RawValue   string    `json:"rawValue"`
	Format     string    `json:"format"`
	DetectedAt time.Time `json:"detectedAt"`
}

// Stats are rolling loop counters. Observability only; the loop never
// branches on them.
type Stats struct {
	Attempts         uint64        `json:"attempts"`
	Successes        uint64        `json:"successes"`
	LastDetectedAt   time.Time     `json:"lastDetectedAt"`
	LastDecodeMethod string        `json:"lastDecodeMethod,omitempty"`
	LastConfidence   float64       `json:"lastConfidence"`
	LastProcessTime  time.Duration `json:"lastProcessTime"`
}
