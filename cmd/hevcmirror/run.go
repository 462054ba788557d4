package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"hevcmirror/internal/batch"
	"hevcmirror/internal/config"
	"hevcmirror/internal/deps"
	"hevcmirror/internal/logging"
	"hevcmirror/internal/transcode"
)

type runFlags struct {
	extension   string
	source      string
	destination string
	bitrateKbps int
	dryRun      bool
	configPath  string
	logLevel    string
	logFormat   string
}

func runBatch(cmd *cobra.Command, flags *runFlags) error {
	if strings.TrimSpace(flags.extension) == "" ||
		strings.TrimSpace(flags.source) == "" ||
		strings.TrimSpace(flags.destination) == "" {
		_ = cmd.Usage()
		return errors.New("flags -e, -s, and -d are required")
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(cfg, flags)

	bitrate := flags.bitrateKbps
	if !cmd.Flags().Changed("bitrate") {
		bitrate = cfg.Transcode.DefaultBitrateKbps
	}
	if bitrate <= 0 {
		return fmt.Errorf("bitrate must be positive, got %d", bitrate)
	}

	source, err := config.ExpandPath(flags.source)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	destination, err := config.ExpandPath(flags.destination)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	if err := unix.Access(source, unix.R_OK|unix.X_OK); err != nil {
		return fmt.Errorf("source %s is not readable: %w", source, err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String("run_id", uuid.NewString()))

	if !flags.dryRun {
		statuses := deps.CheckBinaries(deps.Toolchain(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
		if missing := deps.Missing(statuses); len(missing) > 0 {
			names := make([]string, 0, len(missing))
			for _, status := range missing {
				names = append(names, status.Name)
			}
			return fmt.Errorf("missing required tools: %s (run 'hevcmirror deps' for details)", strings.Join(names, ", "))
		}
	}

	prober := transcode.FFprobeProber{Binary: cfg.FFprobeBinary()}
	transcoder := transcode.NewFFmpegTranscoder(transcode.FFmpegOptions{
		Binary:    cfg.FFmpegBinary(),
		Encoder:   cfg.Transcode.Encoder,
		StreamTag: cfg.Transcode.StreamTag,
		Niceness:  cfg.Transcode.Niceness,
	}, logger)

	runner, err := batch.NewRunner(batch.Options{
		Extension:   strings.TrimPrefix(flags.extension, "."),
		SourceRoot:  source,
		DestRoot:    destination,
		BitrateKbps: bitrate,
		TargetCodec: cfg.Transcode.TargetCodec,
		DryRun:      flags.dryRun,
	}, prober, transcoder, logger)
	if err != nil {
		return err
	}
	runner.Out = cmd.OutOrStdout()

	stats, err := runner.Run(signalCtx)
	if err != nil {
		return err
	}

	renderSummary(cmd.OutOrStdout(), stats)
	if stats.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", stats.Failed)
	}
	return nil
}

// applyFlagOverrides lets --log-level/--log-format win over the config file.
func applyFlagOverrides(cfg *config.Config, flags *runFlags) {
	if strings.TrimSpace(flags.logLevel) != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if strings.TrimSpace(flags.logFormat) != "" {
		cfg.Logging.Format = flags.logFormat
	}
}
