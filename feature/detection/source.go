package detection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrSourceClosed is returned by NextFrame after Release, or when the
// underlying stream has gone away.
var ErrSourceClosed = errors.New("frame source closed")

// Frame is a single captured image.
type Frame struct {
	Data        []byte
	ContentType string
	CapturedAt  time.Time
}

// FrameSource is the camera/media-capture boundary. The loop is the
// single owner of a source: Acquire once, NextFrame per tick, Release
// when done. Switching facing requires a full Release/Acquire cycle.
type FrameSource interface {
	// Acquire opens the stream. Failure here is fatal to the loop.
	Acquire(ctx context.Context) error
	// NextFrame snapshots the current frame.
	NextFrame(ctx context.Context) (*Frame, error)
	// Release closes the stream and frees the device.
	Release() error
}

// SnapshotSource polls an HTTP camera snapshot endpoint. It backs the
// headless scan mode, where the camera is a networked device exposing
// a still-image URL.
type SnapshotSource struct {
	url      string
	facing   string
	client   *http.Client
	acquired bool
}

// NewSnapshotSource creates a frame source over a snapshot URL with a
// requested facing hint.
func NewSnapshotSource(url, facing string, timeout time.Duration) *SnapshotSource {
	return &SnapshotSource{
		url:    url,
		facing: facing,
		client: &http.Client{Timeout: timeout},
	}
}

// Acquire probes the snapshot endpoint once. A camera that is denied or
// unreachable surfaces here, before the loop starts ticking.
func (s *SnapshotSource) Acquire(ctx context.Context) error {
	if s.url == "" {
		return fmt.Errorf("no snapshot URL configured")
	}

	frame, err := s.fetch(ctx)
	if err != nil {
		return fmt.Errorf("camera unavailable: %w", err)
	}
	if len(frame.Data) == 0 {
		return fmt.Errorf("camera returned an empty frame")
	}

	s.acquired = true
	return nil
}

// NextFrame fetches the current snapshot.
func (s *SnapshotSource) NextFrame(ctx context.Context) (*Frame, error) {
	if !s.acquired {
		return nil, ErrSourceClosed
	}
	return s.fetch(ctx)
}

// Release marks the stream closed. The snapshot endpoint is stateless,
// so there is no device handle to free beyond the flag.
func (s *SnapshotSource) Release() error {
	s.acquired = false
	return nil
}

func (s *SnapshotSource) fetch(ctx context.Context) (*Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	if s.facing != "" {
		q := req.URL.Query()
		q.Set("facing", s.facing)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &Frame{Data: data, ContentType: contentType, CapturedAt: time.Now()}, nil
}
