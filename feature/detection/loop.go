package detection

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"stockcount/core/metrics"

	"go.uber.org/zap"
)

// Loop drives periodic frame capture against a frame source and feeds
// debounced barcode candidates to its output channel.
//
// At most one capture/recognition cycle is in flight at a time; a tick
// that fires while a cycle is still running is dropped, not queued.
// Under a sustained frame rate faster than processing, frames are lost
// rather than buffered.
type Loop struct {
	source     FrameSource
	recognizer Recognizer
	interval   time.Duration
	debounce   time.Duration
	logger     *zap.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
	out      chan Candidate

	mu          sync.Mutex
	lastValue   string
	lastValueAt time.Time
	stats       Stats
}

// NewLoop creates a detection loop. Candidates are delivered on the
// channel returned by Candidates; a slow consumer drops candidates
// rather than stalling the loop.
func NewLoop(cfg Config, source FrameSource, recognizer Recognizer, logger *zap.Logger) *Loop {
	return &Loop{
		source:     source,
		recognizer: recognizer,
		interval:   cfg.CaptureInterval(),
		debounce:   cfg.DebounceWindow(),
		logger:     logger,
		out:        make(chan Candidate, 16),
	}
}

// Candidates returns the stream of debounced detections.
func (l *Loop) Candidates() <-chan Candidate {
	return l.out
}

// Stats returns a snapshot of the rolling loop counters.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Run acquires the frame source and ticks until the context is
// cancelled or the source fails. Recognition failures are absorbed;
// losing the stream is fatal and ends the loop with an error.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.source.Acquire(ctx); err != nil {
		return fmt.Errorf("acquiring frame source: %w", err)
	}
	defer func() {
		// An in-flight cycle may still be inside the recognizer; it must
		// finish before the source is released and the channel closed, or
		// its candidate send would hit a closed channel.
		l.wg.Wait()
		if err := l.source.Release(); err != nil {
			l.logger.Warn("Releasing frame source failed", zap.Error(err))
		}
		close(l.out)
	}()

	l.logger.Info("Detection loop started",
		zap.Duration("interval", l.interval),
		zap.Duration("debounce", l.debounce))

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	fatal := make(chan error, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-fatal:
			return err
		case <-ticker.C:
			if !l.inFlight.CompareAndSwap(false, true) {
				// Previous cycle still running; skip this tick.
				continue
			}
			l.wg.Add(1)
			go func() {
				defer l.wg.Done()
				defer l.inFlight.Store(false)
				if err := l.cycle(ctx); err != nil {
					select {
					case fatal <- err:
					default:
					}
				}
			}()
		}
	}
}

// cycle performs one capture/recognize pass. A non-nil return is fatal
// to the loop.
func (l *Loop) cycle(ctx context.Context) error {
	start := time.Now()
	metrics.DetectionAttempts.Inc()

	l.mu.Lock()
	l.stats.Attempts++
	l.mu.Unlock()

	frame, err := l.source.NextFrame(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("capturing frame: %w", err)
	}

	detections, err := l.recognizer.Detect(ctx, frame)
	if err != nil {
		// Recognition failures are transient; log and keep ticking.
		l.logger.Debug("Recognition failed", zap.Error(err))
		return nil
	}

	l.mu.Lock()
	l.stats.LastProcessTime = time.Since(start)
	l.mu.Unlock()

	if len(detections) == 0 {
		return nil
	}

	d := detections[0]
	if !l.accept(d.RawValue, d.DetectedAt) {
		return nil
	}

	metrics.DetectionSuccesses.Inc()

	l.mu.Lock()
	l.stats.Successes++
	l.stats.LastDetectedAt = d.DetectedAt
	l.stats.LastDecodeMethod = d.DecodeMethod
	l.stats.LastConfidence = d.Confidence
	l.mu.Unlock()

	candidate := Candidate{RawValue: d.RawValue, Format: d.Format, DetectedAt: d.DetectedAt}
	select {
	case l.out <- candidate:
	default:
		l.logger.Warn("Candidate dropped, consumer too slow", zap.String("value", d.RawValue))
	}

	return nil
}

// accept applies the debounce window: a repeat of the last value inside
// the window is suppressed so one physical barcode does not fan out
// into duplicate inventory events while the camera lingers on it.
func (l *Loop) accept(rawValue string, at time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rawValue == l.lastValue && at.Sub(l.lastValueAt) < l.debounce {
		return false
	}

	l.lastValue = rawValue
	l.lastValueAt = at
	return true
}
