// Package detection drives the continuous scan loop: periodic frame
// capture from a camera boundary, barcode recognition, and debouncing
// of repeated reads.
//
// # Loop behavior
//
// The loop ticks on a device-class cadence (mobile 2s, desktop 1.5s)
// and holds a single in-flight guard: a tick arriving while a cycle is
// still processing is skipped, never queued, so a camera outpacing the
// recognizer drops frames instead of building a backlog. Repeated
// detections of the same raw value inside the debounce window (mobile
// 1000ms, desktop 500ms) are suppressed; only the first is forwarded.
//
// # Failure semantics
//
// Recognition failures and empty decodes are absorbed and the loop
// keeps ticking. Losing the frame source (camera denied, unreachable)
// is fatal: Run returns the error and the caller decides what to do.
//
// # Boundaries
//
// FrameSource abstracts the camera; SnapshotSource polls an HTTP
// still-image endpoint for headless operation. Recognizer abstracts
// decoding; HTTPRecognizer posts frames to the fallback decode service.
// Uploaded single images go straight to the recognizer via the handler,
// without touching the loop.
package detection
