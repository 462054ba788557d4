// Package deps reports the availability of the external binaries the driver
// shells out to. All codec work is delegated to ffmpeg and ffprobe; the
// checks here let the CLI fail a run (or render a status table) before any
// filesystem work starts.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency hevcmirror relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Check evaluates a single requirement.
func Check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Check(req))
	}
	return results
}

// Toolchain returns the requirements for a transcode run with the given
// ffmpeg/ffprobe commands.
func Toolchain(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Required for transcoding",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Required for media inspection",
		},
	}
}

// Missing returns the non-optional statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
