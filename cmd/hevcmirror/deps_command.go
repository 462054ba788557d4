package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hevcmirror/internal/config"
	"hevcmirror/internal/deps"
)

func newDepsCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show availability of the external toolchain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			statuses := deps.CheckBinaries(deps.Toolchain(cfg.FFmpegBinary(), cfg.FFprobeBinary()))

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Tool", "Command", "Status", "Notes"})
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
				}
				notes := status.Detail
				if notes == "" {
					notes = status.Description
				}
				tw.AppendRow(table.Row{status.Name, status.Command, state, notes})
			}
			tw.Render()

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			return nil
		},
	}
}
