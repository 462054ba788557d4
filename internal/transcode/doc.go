// Package transcode defines the narrow interfaces to the external media
// toolchain: Prober for read-only stream metadata and Transcoder for
// producing HEVC copies. The batch runner depends only on the interfaces so
// tests can substitute fakes; the shipped implementations shell out to
// ffprobe and ffmpeg.
package transcode
