package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscode()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscode() {
	c.Transcode.Encoder = strings.TrimSpace(c.Transcode.Encoder)
	if c.Transcode.Encoder == "" {
		c.Transcode.Encoder = defaultEncoder
	}
	c.Transcode.StreamTag = strings.TrimSpace(c.Transcode.StreamTag)
	if c.Transcode.StreamTag == "" {
		c.Transcode.StreamTag = defaultStreamTag
	}
	// Codec names as reported by ffprobe are lowercase; the skip comparison
	// itself stays case-sensitive.
	c.Transcode.TargetCodec = strings.TrimSpace(c.Transcode.TargetCodec)
	if c.Transcode.TargetCodec == "" {
		c.Transcode.TargetCodec = defaultTargetCodec
	}
	if c.Transcode.DefaultBitrateKbps == 0 {
		c.Transcode.DefaultBitrateKbps = defaultBitrateKbps
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
