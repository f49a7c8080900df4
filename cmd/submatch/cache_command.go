package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

type cacheStatsView struct {
	EntryCount  int            `json:"entry_count"`
	TotalBytes  int64          `json:"total_bytes"`
	PerCategory map[string]int `json:"per_category"`
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the persistent lookup cache",
	}
	cmd.AddCommand(newCacheStatsCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	return cmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts and sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			stats, err := store.Stats()
			if err != nil {
				return fmt.Errorf("read cache stats: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, cacheStatsView{
					EntryCount:  stats.EntryCount,
					TotalBytes:  stats.TotalBytes,
					PerCategory: stats.PerCategory,
				})
			}

			categories := make([]string, 0, len(stats.PerCategory))
			for category := range stats.PerCategory {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			rows := make([][]string, 0, len(categories))
			for _, category := range categories {
				rows = append(rows, []string{category, fmt.Sprintf("%d", stats.PerCategory[category])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"CATEGORY", "ENTRIES"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %s\n", stats.EntryCount, humanBytes(stats.TotalBytes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [category]",
		Short: "Remove cache entries, optionally limited to one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if len(args) == 1 {
				if err := store.ClearCategory(args[0]); err != nil {
					return fmt.Errorf("clear category %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared cache category %q\n", args[0])
				return nil
			}
			if err := store.ClearAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all cache entries")
			return nil
		},
	}
	return cmd
}
