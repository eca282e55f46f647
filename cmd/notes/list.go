package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(get func() *app) *cobra.Command {
	var (
		height float64
		pages  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()

			if height <= 0 {
				height = a.cfg.Pagination.DefaultViewportHeight
			}
			if _, err := a.agg.ScreenReady(ctx, height); err != nil {
				return fmt.Errorf("load first page: %w", err)
			}
			for i := 1; i < pages; i++ {
				res, err := a.agg.LoadNextPage(ctx, a.agg.PageSize())
				if err != nil {
					return fmt.Errorf("load page %d: %w", i+1, err)
				}
				if res.Skipped {
					break
				}
			}

			snap := a.agg.Snapshot()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, n := range snap.Notes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", n.Key, n.Date, n.Title)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if snap.MoreAvailable {
				fmt.Fprintf(out, "-- %d notes shown, more available (--pages %d) --\n", snap.Len(), pages+1)
			} else {
				fmt.Fprintf(out, "-- %d notes --\n", snap.Len())
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0, "Viewport height used to size pages (default from config)")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the snapshot as JSON")
	return cmd
}
