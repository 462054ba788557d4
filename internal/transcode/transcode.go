package transcode

import "context"

// VideoStreamInfo describes the primary video stream of a candidate file.
type VideoStreamInfo struct {
	Codec  string
	Width  int
	Height int
	Frames int64
}

// Prober answers read-only metadata queries about a media file.
type Prober interface {
	ProbeVideoStream(ctx context.Context, path string) (VideoStreamInfo, error)
}

// Job describes a single transcode invocation.
type Job struct {
	Input       string
	Output      string
	BitrateKbps int
}

// Transcoder produces an HEVC copy of a media file. Implementations block
// until the encode finishes; cancelling the context kills the encode.
type Transcoder interface {
	Transcode(ctx context.Context, job Job) error
}
