package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize defaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Transcode.DefaultBitrateKbps != 2000 {
		t.Fatalf("expected default bitrate 2000, got %d", cfg.Transcode.DefaultBitrateKbps)
	}
	if cfg.Transcode.TargetCodec != "hevc" {
		t.Fatalf("expected target codec hevc, got %q", cfg.Transcode.TargetCodec)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config file, resolved %s", resolved)
	}
	if cfg.Transcode.DefaultBitrateKbps != 2000 {
		t.Fatalf("expected default bitrate, got %d", cfg.Transcode.DefaultBitrateKbps)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("expected default tool binaries, got %q/%q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[transcode]
default_bitrate_kbps = 3500
niceness = 5

[tools]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Transcode.DefaultBitrateKbps != 3500 {
		t.Fatalf("expected bitrate 3500, got %d", cfg.Transcode.DefaultBitrateKbps)
	}
	if cfg.Transcode.Niceness != 5 {
		t.Fatalf("expected niceness 5, got %d", cfg.Transcode.Niceness)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.FFmpegBinary())
	}
	if cfg.Transcode.Encoder != "libx265" {
		t.Fatalf("expected encoder default to survive partial config, got %q", cfg.Transcode.Encoder)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Transcode.Niceness = 25
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for niceness above 19")
	}

	cfg = Default()
	cfg.Transcode.DefaultBitrateKbps = -100
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative bitrate")
	}

	cfg = Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestNormalizeExpandsLogDir(t *testing.T) {
	cfg := Default()
	cfg.Paths.LogDir = "~/logs"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if strings.HasPrefix(cfg.Paths.LogDir, "~") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.LogDir)
	}
	if !filepath.IsAbs(cfg.Paths.LogDir) {
		t.Fatalf("expected absolute log dir, got %q", cfg.Paths.LogDir)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
