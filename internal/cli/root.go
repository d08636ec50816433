// Package cli implements fridgectl, the operator tool for reading statistics
// and the change log straight from the document store.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"go-fridge-tracker/internal/service"
)

// Backend is what the commands read from.
type Backend struct {
	Stats *service.StatsService
	Query *service.QueryService
}

// OpenFunc opens a Backend; the returned func releases it.
type OpenFunc func(ctx context.Context) (Backend, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Output string
	open   OpenFunc
}

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{"text", "json", "yaml"}

func NewRootCommand(open OpenFunc) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "fridgectl",
		Short:         "Inspect fridge tracker statistics and change log",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewChangeLogCommand(opts))

	return cmd
}

// windowFlags are shared by commands that read a time window.
type windowFlags struct {
	Filter string
	Start  string
	End    string
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Filter, "filter", "", "case-insensitive substring of the item name")
	cmd.Flags().StringVar(&f.Start, "start", "", "window start, YYYY-MM-DD or RFC 3339 (default: 30 days ago)")
	cmd.Flags().StringVar(&f.End, "end", "", "window end, YYYY-MM-DD or RFC 3339 (default: now)")
}

func (opts *RootOptions) backend(ctx context.Context) (Backend, func(), error) {
	if opts.open == nil {
		return Backend{}, nil, fmt.Errorf("no backend configured")
	}
	return opts.open(ctx)
}
