package transcode

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"hevcmirror/internal/logging"
	"hevcmirror/internal/media/ffprobe"
)

// FFprobeProber implements Prober by shelling out to ffprobe.
type FFprobeProber struct {
	Binary string
}

// ProbeVideoStream inspects path and returns the primary video stream's
// codec, dimensions, and frame count.
func (p FFprobeProber) ProbeVideoStream(ctx context.Context, path string) (VideoStreamInfo, error) {
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return VideoStreamInfo{}, err
	}
	video, ok := result.PrimaryVideo()
	if !ok {
		return VideoStreamInfo{}, fmt.Errorf("probe %s: no video stream", path)
	}
	return VideoStreamInfo{
		Codec:  strings.TrimSpace(video.CodecName),
		Width:  video.Width,
		Height: video.Height,
		Frames: video.FrameCount(),
	}, nil
}

// FFmpegOptions configures the ffmpeg-backed Transcoder.
type FFmpegOptions struct {
	Binary    string
	Encoder   string
	StreamTag string
	Niceness  int
}

// FFmpegTranscoder implements Transcoder by invoking ffmpeg. All streams are
// mapped from the input; audio is copied without re-encoding.
type FFmpegTranscoder struct {
	opts   FFmpegOptions
	logger *slog.Logger
}

// NewFFmpegTranscoder builds a Transcoder around the given ffmpeg binary.
func NewFFmpegTranscoder(opts FFmpegOptions, logger *slog.Logger) *FFmpegTranscoder {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = "ffmpeg"
	}
	if strings.TrimSpace(opts.Encoder) == "" {
		opts.Encoder = "libx265"
	}
	return &FFmpegTranscoder{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "transcode"),
	}
}

// Transcode runs ffmpeg and blocks until it exits. The child is reniced
// after start so a long encode does not starve the host.
func (t *FFmpegTranscoder) Transcode(ctx context.Context, job Job) error {
	if job.BitrateKbps <= 0 {
		return fmt.Errorf("transcode %s: bitrate must be positive, got %d", job.Input, job.BitrateKbps)
	}

	args := t.buildArgs(job)
	t.logger.Debug("invoking ffmpeg", logging.String("args", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, t.opts.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	if t.opts.Niceness > 0 {
		if err := unix.Setpriority(unix.PRIO_PROCESS, cmd.Process.Pid, t.opts.Niceness); err != nil {
			t.logger.Warn("unable to renice ffmpeg", logging.Int("niceness", t.opts.Niceness), logging.Error(err))
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w: %s", job.Input, err, stderrTail(stderr.String()))
	}
	return nil
}

// buildArgs assembles the ffmpeg command line. No -y: an existing output is
// a failure, never an overwrite.
func (t *FFmpegTranscoder) buildArgs(job Job) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", job.Input,
		"-map", "0",
		"-c:v", t.opts.Encoder,
		"-b:v", strconv.Itoa(job.BitrateKbps) + "k",
	}
	if t.opts.StreamTag != "" {
		args = append(args, "-tag:v", t.opts.StreamTag)
	}
	args = append(args, "-c:a", "copy", "-n", job.Output)
	return args
}

func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	const keep = 8
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}
