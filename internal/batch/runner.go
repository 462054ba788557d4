package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"hevcmirror/internal/logging"
	"hevcmirror/internal/scan"
	"hevcmirror/internal/transcode"
)

// lockFileName guards the destination root against concurrent runs; two
// drivers mirroring into the same tree would race the destination-exists
// check.
const lockFileName = ".hevcmirror.lock"

// Runner processes candidates strictly sequentially: each file is fully
// resolved (skipped or transcoded) before the next is considered.
type Runner struct {
	opts       Options
	prober     transcode.Prober
	transcoder transcode.Transcoder
	logger     *slog.Logger

	// Out receives the per-file banner. Defaults to os.Stdout.
	Out io.Writer
}

// NewRunner constructs a Runner. prober and transcoder must be non-nil.
func NewRunner(opts Options, prober transcode.Prober, transcoder transcode.Transcoder, logger *slog.Logger) (*Runner, error) {
	if prober == nil || transcoder == nil {
		return nil, errors.New("batch runner requires a prober and a transcoder")
	}
	if strings.TrimSpace(opts.TargetCodec) == "" {
		opts.TargetCodec = "hevc"
	}
	return &Runner{
		opts:       opts,
		prober:     prober,
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "batch"),
		Out:        os.Stdout,
	}, nil
}

// Run discovers candidates and processes them one at a time. The returned
// error covers setup problems only; per-file failures are counted in Stats
// and the batch continues past them.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	start := time.Now()

	info, err := os.Stat(r.opts.SourceRoot)
	if err != nil {
		return stats, fmt.Errorf("source root: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("source root %s is not a directory", r.opts.SourceRoot)
	}
	if err := os.MkdirAll(r.opts.DestRoot, 0o755); err != nil {
		return stats, fmt.Errorf("create destination root: %w", err)
	}

	lock := flock.New(filepath.Join(r.opts.DestRoot, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return stats, fmt.Errorf("acquire destination lock: %w", err)
	}
	if !locked {
		return stats, fmt.Errorf("another run is already writing to %s", r.opts.DestRoot)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release destination lock", logging.Error(err))
		}
	}()

	files, err := scan.Discover(r.opts.SourceRoot, r.opts.Extension)
	if err != nil {
		return stats, err
	}
	stats.Discovered = len(files)
	r.logger.Info("discovered candidates",
		logging.Int("count", len(files)),
		logging.String("extension", r.opts.Extension),
		logging.String("source", r.opts.SourceRoot),
		logging.String("destination", r.opts.DestRoot),
		logging.Int("bitrate_kbps", r.opts.BitrateKbps))

	for _, path := range files {
		if ctx.Err() != nil {
			r.logger.Warn("interrupted", logging.Int("remaining", stats.Discovered-stats.Transcoded-stats.Skipped()-stats.Failed))
			break
		}
		r.processFile(ctx, path, &stats)
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

// processFile applies the two skip checks in order and short-circuits: when
// the destination already exists the codec probe never runs.
func (r *Runner) processFile(ctx context.Context, source string, stats *Stats) {
	dest, err := scan.MapPath(source, r.opts.SourceRoot, r.opts.DestRoot)
	if err != nil {
		r.logger.Error("map destination path", logging.String("source", source), logging.Error(err))
		stats.Failed++
		return
	}

	if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
		r.logger.Warn("skip: destination already exists",
			logging.String("source", source),
			logging.String("destination", dest))
		stats.SkippedExists++
		return
	}

	video, err := r.prober.ProbeVideoStream(ctx, source)
	if err != nil {
		r.logger.Error("probe failed", logging.String("source", source), logging.Error(err))
		stats.Failed++
		return
	}

	if codecMatches(video.Codec, r.opts.TargetCodec) {
		r.logger.Warn("skip: already target codec",
			logging.String("source", source),
			logging.String("codec", r.opts.TargetCodec))
		stats.SkippedCodec++
		return
	}

	r.banner(source, dest, video)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		r.logger.Error("create destination directory", logging.String("destination", dest), logging.Error(err))
		stats.Failed++
		return
	}

	if r.opts.DryRun {
		r.logger.Info("dry run: would transcode",
			logging.String("source", source),
			logging.String("destination", dest),
			logging.Int("bitrate_kbps", r.opts.BitrateKbps))
		stats.Transcoded++
		return
	}

	job := transcode.Job{Input: source, Output: dest, BitrateKbps: r.opts.BitrateKbps}
	started := time.Now()
	if err := r.transcoder.Transcode(ctx, job); err != nil {
		r.logger.Error("transcode failed", logging.String("source", source), logging.Error(err))
		removePartial(r.logger, dest)
		stats.Failed++
		return
	}

	r.logger.Info("transcoded",
		logging.String("source", source),
		logging.String("destination", dest),
		logging.Duration("elapsed", time.Since(started).Round(time.Second)))
	stats.Transcoded++
}

// codecMatches compares case-sensitively after trimming carriage returns and
// surrounding whitespace, so "hevc\r" matches but "HEVC" does not.
func codecMatches(codec, target string) bool {
	return strings.TrimSpace(strings.ReplaceAll(codec, "\r", "")) == target
}

// removePartial deletes whatever the failed encode left at dest so a later
// run does not mistake a truncated file for a finished one.
func removePartial(logger *slog.Logger, dest string) {
	err := os.Remove(dest)
	if err == nil {
		logger.Warn("removed partial output", logging.String("destination", dest))
		return
	}
	if !os.IsNotExist(err) {
		logger.Warn("unable to remove partial output", logging.String("destination", dest), logging.Error(err))
	}
}
