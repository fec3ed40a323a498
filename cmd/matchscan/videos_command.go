package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matchscan/internal/config"
	"matchscan/internal/store"
	"matchscan/internal/youtube"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	videosCmd := &cobra.Command{
		Use:   "videos",
		Short: "Manage the scan queue",
	}
	videosCmd.AddCommand(newVideosSyncCommand(ctx))
	videosCmd.AddCommand(newVideosListCommand(ctx))
	return videosCmd
}

// newVideosSyncCommand enqueues a channel's uploads as pending scans.
func newVideosSyncCommand(ctx *commandContext) *cobra.Command {
	var channelURL string
	var limit int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Enqueue a channel's uploads for scanning",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				url := strings.TrimSpace(channelURL)
				if url == "" {
					url = strings.TrimSpace(cfg.YouTube.ChannelURL)
				}
				if url == "" {
					return errors.New("no channel URL configured; pass --channel or set youtube.channel_url")
				}

				yt := youtube.NewClient(cfg.YtDlpBinary(), cfg.YouTube.Format)
				entries, err := yt.ListChannelUploads(cmd.Context(), url)
				if err != nil {
					return err
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}

				var added int
				for _, entry := range entries {
					existing, err := s.GetByVideoID(cmd.Context(), entry.ID)
					if err != nil {
						return err
					}
					if existing != nil {
						continue
					}
					if _, err := s.Enqueue(cmd.Context(), entry.ID, entry.Title, "", youtube.WatchURL(entry.ID)); err != nil {
						return err
					}
					added++
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Enqueued %d new videos (%d listed)\n", added, len(entries))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&channelURL, "channel", "", "Channel URL to list (defaults to youtube.channel_url)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only consider the newest N uploads")
	return cmd
}

func newVideosListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known videos and their scan state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				var statuses []store.Status
				if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
					statuses = append(statuses, store.Status(trimmed))
				}
				videos, err := s.ListVideos(cmd.Context(), statuses...)
				if err != nil {
					return err
				}

				if jsonOut || !stdoutIsTTY() {
					return writeJSON(cmd, videosForOutput(videos))
				}

				if len(videos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No videos recorded")
					return nil
				}
				rows := make([][]string, 0, len(videos))
				for _, v := range videos {
					rows = append(rows, []string{
						strconv.FormatInt(v.ID, 10),
						v.VideoID,
						truncate(v.Title, 48),
						string(v.Status),
						strconv.Itoa(v.OracleCalls),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Video", "Title", "Status", "Oracle Calls"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (pending, scanning, scanned, failed)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

type videoOutput struct {
	ID          int64  `json:"id"`
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	UploadDate  string `json:"upload_date,omitempty"`
	Status      string `json:"status"`
	OracleCalls int    `json:"oracle_calls"`
	Error       string `json:"error,omitempty"`
}

func videosForOutput(videos []*store.Video) []videoOutput {
	out := make([]videoOutput, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoOutput{
			ID:          v.ID,
			VideoID:     v.VideoID,
			Title:       v.Title,
			UploadDate:  v.UploadDate,
			Status:      string(v.Status),
			OracleCalls: v.OracleCalls,
			Error:       v.ErrorMessage,
		})
	}
	return out
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
