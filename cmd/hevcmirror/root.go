package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:   "hevcmirror -e EXTENSION -s SOURCE -d DESTINATION [-b BITRATE]",
		Short: "Mirror a video library into HEVC copies",
		Long: `hevcmirror recursively finds video files under a source directory, skips
ones already HEVC-encoded or already present at the destination, and invokes
ffmpeg to produce HEVC copies at the given bitrate, preserving directory
structure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.extension, "extension", "e", "", "File extension to transcode, without leading dot (e.g. mkv)")
	rootCmd.Flags().StringVarP(&flags.source, "source", "s", "", "Source directory, walked recursively")
	rootCmd.Flags().StringVarP(&flags.destination, "destination", "d", "", "Destination directory; mirrored structure, never overwritten")
	rootCmd.Flags().IntVarP(&flags.bitrateKbps, "bitrate", "b", 0, "Target video bitrate in kbps (default 2000)")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Log decisions without invoking ffmpeg")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Override log format (console, json)")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDepsCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
