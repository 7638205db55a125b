package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cadence/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously identified tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, historyViews(entries))
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No identification history recorded.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.IdentifiedAt.Local().Format("2006-01-02 15:04"),
					entry.SourcePath,
					entry.Title,
					entry.Artist,
					optionalValue(entry.Album),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Identified", "Source", "Title", "Artist", "Album"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit history entries as JSON")

	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all identification history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared identification history.")
			return nil
		},
	}
}

type historyView struct {
	SourcePath   string    `json:"source_path"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	Album        *string   `json:"album"`
	AlbumArtist  *string   `json:"albumartist"`
	IdentifiedAt time.Time `json:"identified_at"`
}

func historyViews(entries []history.Entry) []historyView {
	views := make([]historyView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, historyView{
			SourcePath:   entry.SourcePath,
			Title:        entry.Title,
			Artist:       entry.Artist,
			Album:        entry.Album,
			AlbumArtist:  entry.AlbumArtist,
			IdentifiedAt: entry.IdentifiedAt,
		})
	}
	return views
}
