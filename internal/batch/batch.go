package batch

import (
	"time"
)

// Options is the immutable run configuration, built once at startup.
type Options struct {
	// Extension filters discovery, without leading dot (e.g. "mkv").
	Extension string
	// SourceRoot is walked recursively for candidates.
	SourceRoot string
	// DestRoot receives the mirrored directory structure.
	DestRoot string
	// BitrateKbps is the target video bitrate.
	BitrateKbps int
	// TargetCodec marks sources that need no transcode (ffprobe codec name).
	TargetCodec string
	// DryRun logs every decision but never invokes the transcoder.
	DryRun bool
}

// Stats aggregates the outcome of one batch run.
type Stats struct {
	Discovered    int
	Transcoded    int
	SkippedExists int
	SkippedCodec  int
	Failed        int
	Elapsed       time.Duration
}

// Skipped returns the total number of skipped candidates.
func (s Stats) Skipped() int {
	return s.SkippedExists + s.SkippedCodec
}
