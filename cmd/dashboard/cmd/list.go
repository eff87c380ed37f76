package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/dashboard"
	"github.com/trogers1052/stock-dashboard/internal/render"
)

var (
	listSearch    string
	listTradeCode string
	listPage      int
	listChart     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of records",
	Example: `  dashboard list --search gp
  dashboard list --trade-code ACI --page 2 --chart`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive trade code search")
	listCmd.Flags().StringVarP(&listTradeCode, "trade-code", "t", "", "exact trade code filter")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().BoolVar(&listChart, "chart", false, "draw the close and volume charts of the page")
}

func runList(cmd *cobra.Command, args []string) error {
	list := dashboard.NewListController(remote, dashboard.WithPageSize(cfg.Dashboard.PageSize))
	if err := list.Load(cmd.Context()); err != nil {
		return err
	}

	list.Apply(dashboard.SearchChanged{Query: listSearch})
	list.Apply(dashboard.TradeCodeSelected{TradeCode: listTradeCode})
	view := list.Apply(dashboard.PageSelected{Page: listPage})

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Table(view))
	fmt.Fprintf(out, "Trade codes: %s\n", strings.Join(view.TradeCodes, ", "))
	if listChart {
		fmt.Fprint(out, render.CloseChart(view.Chart, 80, 16))
		fmt.Fprint(out, render.VolumeChart(view.Chart, 80, 10))
	}
	return nil
}
