package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Recognizer decodes barcodes from a captured frame. An empty result
// with a nil error is the normal "nothing in frame" outcome.
type Recognizer interface {
	Detect(ctx context.Context, frame *Frame) ([]Detection, error)
}

// decodeResponse is the wire shape of the HTTP recognition boundary.
type decodeResponse struct {
	Success      bool    `json:"success"`
	Error        string  `json:"error,omitempty"`
	Confidence   float64 `json:"confidence,omitempty"`
	DecodeMethod string  `json:"decode_method,omitempty"`
	Barcodes     []struct {
		Data       string  `json:"data"`
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence,omitempty"`
		Position   *struct {
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"position,omitempty"`
	} `json:"barcodes,omitempty"`
}

// HTTPRecognizer posts frame bytes to the fallback decode service. It
// stands in where no platform recognition capability exists.
type HTTPRecognizer struct {
	url    string
	client *http.Client
}

// NewHTTPRecognizer creates a recognizer over the decode endpoint.
func NewHTTPRecognizer(url string, timeout time.Duration) *HTTPRecognizer {
	return &HTTPRecognizer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Detect submits the frame as a multipart upload and maps the response
// to detections. A response that decoded nothing is not an error.
func (r *HTTPRecognizer) Detect(ctx context.Context, frame *Frame) ([]Detection, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(frame.Data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("decode service returned status %d", resp.StatusCode)
	}

	var body decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding recognition response: %w", err)
	}

	if !body.Success {
		if body.Error != "" {
			return nil, fmt.Errorf("decode service: %s", body.Error)
		}
		return nil, nil
	}

	now := time.Now()
	detections := make([]Detection, 0, len(body.Barcodes))
	for _, b := range body.Barcodes {
		if b.Data == "" {
			continue
		}
		d := Detection{
			RawValue:     b.Data,
			Format:       b.Type,
			Confidence:   b.Confidence,
			DecodeMethod: body.DecodeMethod,
			DetectedAt:   now,
		}
		if d.Confidence == 0 {
			d.Confidence = body.Confidence
		}
		if b.Position != nil {
			d.BoundingBox = &BoundingBox{
				X: b.Position.X, Y: b.Position.Y,
				Width: b.Position.Width, Height: b.Position.Height,
			}
		}
		detections = append(detections, d)
	}

	return detections, nil
}
