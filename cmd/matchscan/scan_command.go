package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"matchscan/internal/config"
	"matchscan/internal/finder"
	"matchscan/internal/media/ffprobe"
	"matchscan/internal/notifications"
	"matchscan/internal/scoreboard"
	"matchscan/internal/services"
	"matchscan/internal/store"
	"matchscan/internal/youtube"
)

// scanSource is the resolved input for one scan: where the video lives and
// how it is identified.
type scanSource struct {
	videoID    string
	title      string
	uploadDate string
	sourceURL  string
	localPath  string
	download   bool
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut      bool
		metadataOnly bool
		scanNext     bool
		keepFrames   bool
	)

	cmd := &cobra.Command{
		Use:   "scan [source]",
		Short: "Scan a recording for match starts",
		Long: `Scan a recording for match starts.

The source is either a local video file or a YouTube URL. With --next the
oldest pending video from the database is scanned instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scanNext == (len(args) == 1) {
				return errors.New("provide exactly one source argument or --next")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "matchscan.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scan lock: %w", err)
			}
			if !ok {
				return errors.New("another matchscan instance is already running")
			}
			defer func() { _ = lock.Unlock() }()

			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				yt := youtube.NewClient(cfg.YtDlpBinary(), cfg.YouTube.Format)

				var arg string
				if len(args) == 1 {
					arg = args[0]
				}
				source, err := resolveSource(sigCtx, s, yt, arg, scanNext)
				if err != nil {
					return err
				}
				if source == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No pending videos to scan")
					return nil
				}

				if metadataOnly {
					return writeJSON(cmd, map[string]string{
						"video_id":    source.videoID,
						"video_title": source.title,
						"upload_date": source.uploadDate,
					})
				}

				runID := uuid.NewString()
				scanCtx := services.WithRunID(services.WithVideoID(sigCtx, source.videoID), runID)
				logger = logger.With("video_id", source.videoID, "run_id", runID)

				doc, err := runScan(scanCtx, cfg, s, yt, logger, source, keepFrames)
				if err != nil {
					return err
				}
				if jsonOut || !stdoutIsTTY() {
					return writeJSON(cmd, doc)
				}
				printMatchTable(cmd, *doc)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	cmd.Flags().BoolVar(&metadataOnly, "metadata-only", false, "Fetch and record metadata without scanning")
	cmd.Flags().BoolVar(&scanNext, "next", false, "Scan the oldest pending video from the database")
	cmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "Retain every extracted frame for debugging")
	return cmd
}

// resolveSource turns the command argument (or --next) into a scanSource and
// records the video as pending. A nil source with nil error means the pending
// queue is empty.
func resolveSource(ctx context.Context, s *store.Store, yt *youtube.Client, arg string, scanNext bool) (*scanSource, error) {
	if scanNext {
		video, err := s.NextPending(ctx)
		if err != nil {
			return nil, err
		}
		if video == nil {
			return nil, nil
		}
		url := video.SourceURL
		if url == "" {
			url = youtube.WatchURL(video.VideoID)
		}
		return &scanSource{
			videoID:    video.VideoID,
			title:      video.Title,
			uploadDate: video.UploadDate,
			sourceURL:  url,
			download:   true,
		}, nil
	}

	if youtube.IsURL(arg) {
		videoID, err := youtube.ExtractVideoID(arg)
		if err != nil {
			return nil, err
		}
		meta, err := yt.FetchMetadata(ctx, arg)
		if err != nil {
			return nil, err
		}
		if _, err := s.Enqueue(ctx, videoID, meta.Title, meta.UploadDate, arg); err != nil {
			return nil, err
		}
		return &scanSource{
			videoID:    videoID,
			title:      meta.Title,
			uploadDate: meta.UploadDate,
			sourceURL:  arg,
			download:   true,
		}, nil
	}

	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "scan", "resolve source", fmt.Sprintf("video file %s", path), err)
	}
	base := filepath.Base(path)
	videoID := strings.TrimSuffix(base, filepath.Ext(base))
	if _, err := s.Enqueue(ctx, videoID, videoID, "", path); err != nil {
		return nil, err
	}
	return &scanSource{
		videoID:   videoID,
		title:     videoID,
		sourceURL: path,
		localPath: path,
	}, nil
}

func runScan(ctx context.Context, cfg *config.Config, s *store.Store, yt *youtube.Client, logger *slog.Logger, source *scanSource, keepFrames bool) (*resultsDoc, error) {
	video, err := s.GetByVideoID(ctx, source.videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, services.Wrap(services.ErrNotFound, "scan", "run", fmt.Sprintf("video %s not recorded", source.videoID), nil)
	}
	if err := s.MarkScanning(ctx, video.ID); err != nil {
		return nil, err
	}

	notifier := notifications.NewService(cfg)
	failed := func(cause error) (*resultsDoc, error) {
		if markErr := s.MarkFailed(context.WithoutCancel(ctx), video.ID, cause.Error()); markErr != nil {
			logger.Warn("record scan failure", "error", markErr)
		}
		if notifyErr := notifier.NotifyError(context.WithoutCancel(ctx), cause, "scan"); notifyErr != nil {
			logger.Warn("send error notification", "error", notifyErr)
		}
		return nil, cause
	}

	localPath := source.localPath
	if source.download {
		downloadDir := filepath.Join(cfg.Paths.StateDir, "videos")
		logger.Info("fetching video", "url", source.sourceURL)
		localPath, err = yt.Download(ctx, source.sourceURL, source.videoID, downloadDir)
		if err != nil {
			return failed(err)
		}
	}

	duration, err := ffprobe.Duration(ctx, cfg.FFprobeBinary(), localPath)
	if err != nil {
		return failed(services.Wrap(services.ErrExternalTool, "scan", "probe duration", localPath, err))
	}

	oracle := scoreboard.NewClient(scoreboard.Config{
		BaseURL:        cfg.Oracle.BaseURL,
		TimeoutSeconds: cfg.Oracle.TimeoutSeconds,
		CropBottom:     cfg.Oracle.CropBottom,
		CropLeft:       cfg.Oracle.CropLeft,
	})
	if err := oracle.HealthCheck(ctx); err != nil {
		return failed(services.Wrap(services.ErrUnavailable, "scan", "oracle health check", cfg.Oracle.BaseURL, err))
	}

	evidenceDir := filepath.Join(cfg.Paths.OutputDir, source.videoID)
	if err := os.MkdirAll(evidenceDir, 0o755); err != nil {
		return failed(fmt.Errorf("create output directory: %w", err))
	}
	keepDir := ""
	if keepFrames || cfg.Finder.KeepFrames {
		keepDir = filepath.Join(evidenceDir, "frames")
	}

	f, err := finder.New(
		finder.FFmpegExtractor{Binary: cfg.FFmpegBinary(), Source: localPath},
		oracle,
		finder.Config{
			CoarseIntervalSeconds: float64(cfg.Finder.CoarseIntervalSeconds),
			PrecisionSeconds:      float64(cfg.Finder.PrecisionSeconds),
			MinBreakSeconds:       float64(cfg.Finder.MinBreakSeconds),
			MaxRetries:            cfg.Finder.MaxRetries,
			RetryOffsetSeconds:    float64(cfg.Finder.RetryOffsetSeconds),
			EarlyPointThreshold:   cfg.Finder.EarlyPointThreshold,
			SecondsPerPoint:       float64(cfg.Finder.SecondsPerPoint),
			EvidenceDir:           evidenceDir,
			KeepDir:               keepDir,
		},
		logger,
	)
	if err != nil {
		return failed(err)
	}
	defer func() { _ = f.Close() }()

	if err := notifier.NotifyScanStarted(ctx, source.title); err != nil {
		logger.Warn("send start notification", "error", err)
	}

	logger.Info("scan starting", "source", localPath, "duration", duration)
	result, err := f.FindMatchStarts(ctx, duration)
	if err != nil {
		return failed(err)
	}

	if err := s.ReplaceMatches(ctx, video.ID, storeMatches(result.Matches)); err != nil {
		return failed(err)
	}
	if err := s.MarkScanned(ctx, video.ID, duration, result.OracleCalls); err != nil {
		return failed(err)
	}

	doc := buildResultsDoc(source.videoID, source.title, source.uploadDate, result.Matches)
	docPath, err := saveResultsDoc(evidenceDir, doc)
	if err != nil {
		return failed(err)
	}
	logger.Info("results written", "path", docPath, "matches", len(doc.Matches), "oracle_calls", result.OracleCalls)

	if err := notifier.NotifyScanCompleted(ctx, source.title, len(doc.Matches), result.OracleCalls, result.TotalDuration); err != nil {
		logger.Warn("send completion notification", "error", err)
	}
	return &doc, nil
}

func printMatchTable(cmd *cobra.Command, doc resultsDoc) {
	out := cmd.OutOrStdout()
	if len(doc.Matches) == 0 {
		fmt.Fprintf(out, "No match starts found in %s\n", doc.VideoTitle)
		return
	}

	rows := make([][]string, 0, len(doc.Matches))
	for i, m := range doc.Matches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			finder.FormatTimestamp(float64(m.Timestamp)),
			m.Player1,
			m.Player2,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Start", "Player 1", "Player 2"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "%d match starts in %s\n", len(doc.Matches), doc.VideoTitle)
}
