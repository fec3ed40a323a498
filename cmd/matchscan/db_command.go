package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"matchscan/internal/config"
	"matchscan/internal/finder"
	"matchscan/internal/store"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and maintain the scan database",
	}
	dbCmd.AddCommand(newDBStatsCommand(ctx))
	dbCmd.AddCommand(newDBMatchesCommand(ctx))
	dbCmd.AddCommand(newDBResetCommand(ctx))
	dbCmd.AddCommand(newDBRemoveCommand(ctx))
	return dbCmd
}

func newDBStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show video counts per scan state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				stats, err := s.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", s.Path())
				fmt.Fprintf(out, "Total:    %d\n", stats.Total)
				fmt.Fprintf(out, "Pending:  %d\n", stats.Pending)
				fmt.Fprintf(out, "Scanning: %d\n", stats.Scanning)
				fmt.Fprintf(out, "Scanned:  %d\n", stats.Scanned)
				fmt.Fprintf(out, "Failed:   %d\n", stats.Failed)
				return nil
			})
		},
	}
}

func newDBMatchesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "matches <video-id>",
		Short: "Show recorded match starts for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				video, err := s.GetByVideoID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if video == nil {
					return fmt.Errorf("video %s not found", args[0])
				}
				matches, err := s.MatchesForVideo(cmd.Context(), video.ID)
				if err != nil {
					return err
				}

				if jsonOut || !stdoutIsTTY() {
					return writeJSON(cmd, matches)
				}
				if len(matches) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No matches recorded for %s\n", video.VideoID)
					return nil
				}
				rows := make([][]string, 0, len(matches))
				for i, m := range matches {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						finder.FormatTimestamp(float64(m.TimestampSeconds)),
						m.Player1,
						m.Player2,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Start", "Player 1", "Player 2"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

// newDBResetCommand returns interrupted scans to pending.
func newDBResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-stuck",
		Short: "Return interrupted scans to the pending state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				reset, err := s.ResetStuckScanning(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d videos to pending\n", reset)
				return nil
			})
		},
	}
}

func newDBRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a video and its matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", args[0])
				}
				removed, err := s.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no video with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed video %d\n", id)
				return nil
			})
		},
	}
}
