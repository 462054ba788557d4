// Package logging wraps log/slog with the repository's two output formats:
// a human-oriented console handler and machine-readable JSON. Attribute
// helpers keep field names consistent across packages; NewComponentLogger
// tags a logger with the emitting subsystem so console lines read
// "TIME LEVEL component: message".
package logging
