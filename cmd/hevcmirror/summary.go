package main

import (
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hevcmirror/internal/batch"
)

func renderSummary(w io.Writer, stats batch.Stats) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Result", "Files"})
	tw.AppendRows([]table.Row{
		{"Discovered", strconv.Itoa(stats.Discovered)},
		{"Transcoded", strconv.Itoa(stats.Transcoded)},
		{"Skipped (exists)", strconv.Itoa(stats.SkippedExists)},
		{"Skipped (already HEVC)", strconv.Itoa(stats.SkippedCodec)},
		{"Failed", strconv.Itoa(stats.Failed)},
	})
	tw.AppendFooter(table.Row{"Elapsed", stats.Elapsed.Round(time.Second).String()})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	tw.Render()
}
