// Package config loads and validates hevcmirror's TOML configuration.
//
// Configuration is optional: every value has a built-in default, and the
// per-run parameters (extension, source, destination, bitrate) are supplied
// on the command line rather than persisted here. Loading follows a fixed
// sequence: defaults, file decode, normalization (trimming and tilde
// expansion), then validation.
//
// Primary entry points:
//   - Load: locate, decode, normalize, and validate a config file
//   - Default: repository defaults
//   - CreateSample: write the embedded sample config for `config init`
package config
