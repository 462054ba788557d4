// Package main hosts the hevcmirror CLI entrypoint and command graph.
//
// The root command runs a batch itself; subcommands cover configuration
// scaffolding, toolchain status, and version output. Command handlers stay
// thin: configuration resolution, logging setup, and exit-code mapping live
// here, while the actual walk-probe-transcode loop lives in internal/batch.
package main
