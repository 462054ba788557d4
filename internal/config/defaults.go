package config

const (
	defaultLogDir        = "~/.local/share/hevcmirror/logs"
	defaultEncoder       = "libx265"
	defaultStreamTag     = "hvc1"
	defaultTargetCodec   = "hevc"
	defaultBitrateKbps   = 2000
	defaultNiceness      = 10
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Transcode: Transcode{
			Encoder:            defaultEncoder,
			StreamTag:          defaultStreamTag,
			TargetCodec:        defaultTargetCodec,
			DefaultBitrateKbps: defaultBitrateKbps,
			Niceness:           defaultNiceness,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
