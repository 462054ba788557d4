package batch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"hevcmirror/internal/logging"
	"hevcmirror/internal/transcode"
)

type fakeProber struct {
	calls []string
	codec map[string]string
	err   error
}

func (p *fakeProber) ProbeVideoStream(_ context.Context, path string) (transcode.VideoStreamInfo, error) {
	p.calls = append(p.calls, path)
	if p.err != nil {
		return transcode.VideoStreamInfo{}, p.err
	}
	codec := p.codec[path]
	if codec == "" {
		codec = "h264"
	}
	return transcode.VideoStreamInfo{Codec: codec, Width: 1920, Height: 1080, Frames: 1000}, nil
}

type fakeTranscoder struct {
	jobs         []transcode.Job
	err          error
	leavePartial bool
}

func (t *fakeTranscoder) Transcode(_ context.Context, job transcode.Job) error {
	t.jobs = append(t.jobs, job)
	if t.err != nil {
		if t.leavePartial {
			_ = os.WriteFile(job.Output, []byte("partial"), 0o644)
		}
		return t.err
	}
	return os.WriteFile(job.Output, []byte("encoded"), 0o644)
}

func writeSource(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newTestRunner(t *testing.T, opts Options, prober transcode.Prober, tr transcode.Transcoder) *Runner {
	t.Helper()
	runner, err := NewRunner(opts, prober, tr, logging.NewNop())
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	runner.Out = io.Discard
	return runner
}

func TestRunTranscodesCandidate(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, filepath.Join(src, "x", "y.mkv"))

	prober := &fakeProber{}
	tr := &fakeTranscoder{}
	runner := newTestRunner(t, Options{
		Extension:   "mkv",
		SourceRoot:  src,
		DestRoot:    dst,
		BitrateKbps: 2000,
	}, prober, tr)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(tr.jobs) != 1 {
		t.Fatalf("expected 1 transcode, got %d", len(tr.jobs))
	}
	job := tr.jobs[0]
	if job.Input != filepath.Join(src, "x", "y.mkv") {
		t.Fatalf("unexpected input: %s", job.Input)
	}
	if job.Output != filepath.Join(dst, "x", "y.mkv") {
		t.Fatalf("unexpected output: %s", job.Output)
	}
	if job.BitrateKbps != 2000 {
		t.Fatalf("unexpected bitrate: %d", job.BitrateKbps)
	}

	if info, err := os.Stat(filepath.Join(dst, "x")); err != nil || !info.IsDir() {
		t.Fatalf("expected destination directory to be created: %v", err)
	}
	if stats.Transcoded != 1 || stats.Failed != 0 || stats.Skipped() != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDestinationExistsSkipsWithoutProbe(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, filepath.Join(src, "x", "y.mkv"))
	writeSource(t, filepath.Join(dst, "x", "y.mkv"))

	prober := &fakeProber{}
	tr := &fakeTranscoder{}
	runner := newTestRunner(t, Options{Extension: "mkv", SourceRoot: src, DestRoot: dst, BitrateKbps: 2000}, prober, tr)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(prober.calls) != 0 {
		t.Fatalf("probe should not run when destination exists, got calls %v", prober.calls)
	}
	if len(tr.jobs) != 0 {
		t.Fatal("transcoder should not be invoked")
	}
	if stats.SkippedExists != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestTargetCodecSkips(t *testing.T) {
	cases := []struct {
		codec string
		skip  bool
	}{
		{"hevc", true},
		{"hevc\r", true},
		{" hevc \r\n", true},
		{"HEVC", false},
		{"HEVC\r", false},
		{"h264", false},
	}

	for _, tc := range cases {
		src := t.TempDir()
		dst := t.TempDir()
		source := filepath.Join(src, "movie.mkv")
		writeSource(t, source)

		prober := &fakeProber{codec: map[string]string{source: tc.codec}}
		tr := &fakeTranscoder{}
		runner := newTestRunner(t, Options{Extension: "mkv", SourceRoot: src, DestRoot: dst, BitrateKbps: 2000}, prober, tr)

		stats, err := runner.Run(context.Background())
		if err != nil {
			t.Fatalf("codec %q: run: %v", tc.codec, err)
		}
		invoked := len(tr.jobs) > 0
		if tc.skip && invoked {
			t.Fatalf("codec %q: expected skip, transcoder was invoked", tc.codec)
		}
		if !tc.skip && !invoked {
			t.Fatalf("codec %q: expected transcode, got stats %+v", tc.codec, stats)
		}
		if tc.skip && stats.SkippedCodec != 1 {
			t.Fatalf("codec %q: unexpected stats %+v", tc.codec, stats)
		}
	}
}

func TestFailedTranscodeCleansPartialOutput(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, filepath.Join(src, "movie.mkv"))

	tr := &fakeTranscoder{err: errors.New("encoder exploded"), leavePartial: true}
	runner := newTestRunner(t, Options{Extension: "mkv", SourceRoot: src, DestRoot: dst, BitrateKbps: 2000}, &fakeProber{}, tr)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Failed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(dst, "movie.mkv")); !os.IsNotExist(err) {
		t.Fatalf("expected partial output to be removed, stat err: %v", err)
	}
}

func TestProbeFailureContinuesBatch(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, filepath.Join(src, "bad.mkv"))

	prober := &fakeProber{err: errors.New("probe broke")}
	tr := &fakeTranscoder{}
	runner := newTestRunner(t, Options{Extension: "mkv", SourceRoot: src, DestRoot: dst, BitrateKbps: 2000}, prober, tr)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Failed != 1 || len(tr.jobs) != 0 {
		t.Fatalf("unexpected outcome: stats %+v, jobs %d", stats, len(tr.jobs))
	}
}

func TestDryRunInvokesNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, filepath.Join(src, "movie.mkv"))

	tr := &fakeTranscoder{}
	runner := newTestRunner(t, Options{Extension: "mkv", SourceRoot: src, DestRoot: dst, BitrateKbps: 2000, DryRun: true}, &fakeProber{}, tr)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(tr.jobs) != 0 {
		t.Fatal("dry run must not invoke the transcoder")
	}
	if stats.Transcoded != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(dst, "movie.mkv")); !os.IsNotExist(err) {
		t.Fatal("dry run must not write output")
	}
}

func TestRunRefusesLockedDestination(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSource(t, filepath.Join(src, "movie.mkv"))

	held := flock.New(filepath.Join(dst, lockFileName))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("prepare lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	runner := newTestRunner(t, Options{Extension: "mkv", SourceRoot: src, DestRoot: dst, BitrateKbps: 2000}, &fakeProber{}, &fakeTranscoder{})
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected error when destination is locked by another run")
	}
}

func TestRunRejectsMissingSourceRoot(t *testing.T) {
	runner := newTestRunner(t, Options{
		Extension:   "mkv",
		SourceRoot:  filepath.Join(t.TempDir(), "missing"),
		DestRoot:    t.TempDir(),
		BitrateKbps: 2000,
	}, &fakeProber{}, &fakeTranscoder{})

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing source root")
	}
}

func TestCodecMatches(t *testing.T) {
	if !codecMatches("hevc\r", "hevc") {
		t.Fatal("carriage return should be trimmed")
	}
	if codecMatches("HEVC", "hevc") {
		t.Fatal("comparison must stay case-sensitive")
	}
}
