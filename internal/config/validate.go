package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.DefaultBitrateKbps <= 0 {
		return errors.New("transcode.default_bitrate_kbps must be positive")
	}
	if c.Transcode.Niceness < 0 || c.Transcode.Niceness > 19 {
		return errors.New("transcode.niceness must be between 0 and 19")
	}
	if c.Transcode.Encoder == "" {
		return errors.New("transcode.encoder must be set")
	}
	if c.Transcode.TargetCodec == "" {
		return errors.New("transcode.target_codec must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
