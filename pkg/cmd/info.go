package cmd

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

// infoCmd creates the info command, which prints the merged runtime
// configuration. Useful for checking which environment and flag values are
// in effect before running a destructive command.
//
// Example usage:
//
//	lcmap --hosts localhost:9042 info
func infoCmd() *Handler {
	return &Handler{
		Name:  "info",
		Usage: "Print the merged configuration",
		Run: func(_ context.Context, sys *system.System, _ []string) error {
			fmt.Println(renderConfig(sys.Config()))
			return nil
		},
	}
}

// renderConfig renders every configuration setting as a two-column table.
func renderConfig(cfg config.Configuration) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	tw.AppendHeader(table.Row{"Setting", "Value"})

	for _, pair := range cfg.Flatten() {
		tw.AppendRow(table.Row{pair[0], pair[1]})
	}

	return tw.Render()
}
