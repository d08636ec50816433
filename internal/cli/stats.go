package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
)

type StatsOptions struct {
	*RootOptions
	windowFlags
	Sort string
}

func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-item add, modify and delete counts",
		Long: `Aggregate the change log over a time window into per-item counters
and the most active user for each item.

Examples:
  fridgectl stats
  fridgectl stats --filter milk --start 2026-01-01 --end 2026-01-31
  fridgectl stats --sort activity -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}

	opts.windowFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "order rows by item or activity (default: first seen)")

	return cmd
}

func runStats(cmd *cobra.Command, opts *StatsOptions) error {
	sort := model.StatsSort(opts.Sort)
	switch sort {
	case model.StatsSortNone, model.StatsSortItem, model.StatsSortActivity:
	default:
		return fmt.Errorf("invalid sort %q: must be item or activity", opts.Sort)
	}

	start, err := service.ParseBound(opts.Start, false)
	if err != nil {
		return err
	}
	end, err := service.ParseBound(opts.End, true)
	if err != nil {
		return err
	}

	backend, release, err := opts.backend(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	stats, window, err := backend.Stats.Aggregate(cmd.Context(), model.StatsQuery{
		Filter: opts.Filter,
		Start:  start,
		End:    end,
		Sort:   sort,
	})
	if err != nil {
		return err
	}

	out := struct {
		Window model.Window      `json:"window"`
		Stats  []model.ItemStats `json:"stats"`
	}{Window: window, Stats: stats}

	return render(cmd.OutOrStdout(), opts.Output, out, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "window %s .. %s\n", window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
		fmt.Fprintln(tw, "ITEM\tADD\tMODIFY\tDELETE\tTOP USER")
		for _, s := range stats {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", s.Item, s.AddCount, s.ModifyCount, s.DeleteCount, s.TopUser)
		}
	})
}
