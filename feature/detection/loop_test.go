package detection

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSource serves a fixed frame and records lifecycle calls.
type stubSource struct {
	acquireErr error
	frameErr   error
	released   atomic.Bool
}

func (s *stubSource) Acquire(ctx context.Context) error { return s.acquireErr }

func (s *stubSource) NextFrame(ctx context.Context) (*Frame, error) {
	if s.frameErr != nil {
		return nil, s.frameErr
	}
	return &Frame{Data: []byte{0xFF}, ContentType: "image/jpeg", CapturedAt: time.Now()}, nil
}

func (s *stubSource) Release() error {
	s.released.Store(true)
	return nil
}

// stubRecognizer returns scripted results in order, repeating the last.
type stubRecognizer struct {
	results [][]Detection
	errs    []error
	delay   time.Duration
	calls   atomic.Int32
}

func (r *stubRecognizer) Detect(ctx context.Context, frame *Frame) ([]Detection, error) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	i := int(r.calls.Add(1)) - 1
	if i >= len(r.results) {
		i = len(r.results) - 1
	}
	var err error
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return r.results[i], err
}

// blockingRecognizer stalls inside Detect until released, so tests can
// hold a cycle in flight across a context cancellation.
type blockingRecognizer struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRecognizer) Detect(ctx context.Context, frame *Frame) ([]Detection, error) {
	r.entered <- struct{}{}
	<-r.release
	return det("8851234567890"), nil
}

func det(value string) []Detection {
	return []Detection{{RawValue: value, Format: "ean_13", Confidence: 0.9, DetectedAt: time.Now()}}
}

func testLoop(source FrameSource, rec Recognizer, interval, debounce time.Duration) *Loop {
	l := NewLoop(Config{DeviceClass: DeviceDesktop}, source, rec, zap.NewNop())
	l.interval = interval
	l.debounce = debounce
	return l
}

func runFor(t *testing.T, l *Loop, d time.Duration) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	err := l.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func drain(l *Loop) []Candidate {
	var out []Candidate
	for c := range l.Candidates() {
		out = append(out, c)
	}
	return out
}

func TestLoop_AcquireFailureIsFatal(t *testing.T) {
	source := &stubSource{acquireErr: errors.New("camera permission denied")}
	l := testLoop(source, &stubRecognizer{results: [][]Detection{nil}}, time.Millisecond, time.Millisecond)

	err := l.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera permission denied")
}

func TestLoop_DebounceSuppressesRepeats(t *testing.T) {
	source := &stubSource{}
	rec := &stubRecognizer{results: [][]Detection{det("8851234567890")}}
	// Debounce far wider than the run window: only the first read passes.
	l := testLoop(source, rec, 5*time.Millisecond, time.Minute)

	require.NoError(t, runFor(t, l, 100*time.Millisecond))

	candidates := drain(l)
	require.Len(t, candidates, 1)
	assert.Equal(t, "8851234567890", candidates[0].RawValue)
	assert.True(t, source.released.Load(), "source must be released on exit")

	stats := l.Stats()
	assert.Equal(t, uint64(1), stats.Successes)
	assert.Greater(t, stats.Attempts, uint64(1))
}

func TestLoop_DistinctValuesPassDebounce(t *testing.T) {
	source := &stubSource{}
	rec := &stubRecognizer{results: [][]Detection{det("8851234567890"), det("48912345")}}
	l := testLoop(source, rec, 5*time.Millisecond, time.Minute)

	require.NoError(t, runFor(t, l, 100*time.Millisecond))

	candidates := drain(l)
	require.GreaterOrEqual(t, len(candidates), 2)
	assert.Equal(t, "8851234567890", candidates[0].RawValue)
	assert.Equal(t, "48912345", candidates[1].RawValue)
}

func TestLoop_RecognitionErrorsAreAbsorbed(t *testing.T) {
	source := &stubSource{}
	rec := &stubRecognizer{
		results: [][]Detection{nil, det("8851234567890")},
		errs:    []error{errors.New("decode failed")},
	}
	l := testLoop(source, rec, 5*time.Millisecond, time.Minute)

	require.NoError(t, runFor(t, l, 100*time.Millisecond))

	candidates := drain(l)
	require.Len(t, candidates, 1, "loop keeps going after a recognition failure")
}

func TestLoop_FrameFailureIsFatal(t *testing.T) {
	source := &stubSource{frameErr: errors.New("stream lost")}
	l := testLoop(source, &stubRecognizer{results: [][]Detection{nil}}, time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := l.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream lost")
}

func TestLoop_SingleCycleInFlight(t *testing.T) {
	source := &stubSource{}
	// Recognition takes far longer than the tick interval; ticks that
	// arrive mid-cycle must be dropped, not queued.
	rec := &stubRecognizer{results: [][]Detection{nil}, delay: 40 * time.Millisecond}
	l := testLoop(source, rec, time.Millisecond, time.Millisecond)

	require.NoError(t, runFor(t, l, 100*time.Millisecond))
	assert.LessOrEqual(t, rec.calls.Load(), int32(4))
}

func TestLoop_StopWaitsForInFlightCycle(t *testing.T) {
	source := &stubSource{}
	rec := &blockingRecognizer{entered: make(chan struct{}), release: make(chan struct{})}
	l := testLoop(source, rec, time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	<-rec.entered
	cancel()

	select {
	case <-done:
		t.Fatal("Run returned while a cycle was still in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(rec.release)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the cycle finished")
	}

	// The late candidate lands on the still-open channel, then the
	// channel closes cleanly.
	candidates := drain(l)
	require.Len(t, candidates, 1)
	assert.True(t, source.released.Load(), "source must be released on exit")
}

func TestSnapshotSource_AcquireFailsWithoutURL(t *testing.T) {
	s := NewSnapshotSource("", "environment", time.Second)
	assert.Error(t, s.Acquire(context.Background()))
}
