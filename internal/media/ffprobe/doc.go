// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe with packet counting and returns a Result
//
// Helper methods on Result locate the primary video stream and expose
// stream counts, duration, and frame totals.
package ffprobe
