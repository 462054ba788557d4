package batch

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"hevcmirror/internal/transcode"
)

// banner prints the informational per-file header: source, dimensions, frame
// count, destination. Nothing downstream depends on it.
func (r *Runner) banner(source, dest string, video transcode.VideoStreamInfo) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.Out)
	if isTerminal(r.Out) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	frames := "unknown"
	if video.Frames > 0 {
		frames = fmt.Sprintf("%d", video.Frames)
	}

	tw.AppendRows([]table.Row{
		{"Source", source},
		{"Video", fmt.Sprintf("%dx%d %s", video.Width, video.Height, video.Codec)},
		{"Frames", frames},
		{"Bitrate", fmt.Sprintf("%dk", r.opts.BitrateKbps)},
		{"Destination", dest},
	})
	tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
