package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
)

type ChangeLogOptions struct {
	*RootOptions
	windowFlags
	Limit int
}

func NewChangeLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChangeLogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "changelog",
		Aliases: []string{"log"},
		Short:   "List change-log entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangeLog(cmd, opts)
		},
	}

	opts.windowFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many entries (0 for all)")

	return cmd
}

func runChangeLog(cmd *cobra.Command, opts *ChangeLogOptions) error {
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

	entries, _, err := backend.Query.ListChangeLog(cmd.Context(), model.ChangeLogQuery{Filter: opts.Filter, Start: start, End: end})
	if err != nil {
		return err
	}
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	return render(cmd.OutOrStdout(), opts.Output, entries, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "TIME\tOP\tITEM\tOLD\tNEW\tCHANGED\tUSER")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Time.Format(time.RFC3339), e.OpType, e.Item, e.OldValue, e.NewValue, e.ChangedValue, e.User)
		}
	})
}
