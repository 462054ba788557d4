// Package batch drives a single mirroring run: discover candidates under
// the source root, decide per file whether to transcode, and delegate the
// encode to the transcode package. Processing is strictly sequential and
// keeps no state between files beyond the run Options.
//
// Two independent skip checks run in order, short-circuiting: a regular
// file already at the destination path wins unconditionally (no probe), and
// a source whose primary video stream already carries the target codec is
// left alone. A flock in the destination root prevents two runs from racing
// the first check.
package batch
