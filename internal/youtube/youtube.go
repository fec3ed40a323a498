// Package youtube wraps the yt-dlp command line tool for metadata lookup and
// video download.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"matchscan/internal/services"
)

// Metadata is the subset of yt-dlp's JSON dump the scanner cares about.
type Metadata struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	UploadDate string  `json:"upload_date"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
	WebpageURL string  `json:"webpage_url"`
}

// Entry is one upload in a channel listing.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// IsURL reports whether the argument looks like a YouTube URL rather than a
// local file path.
func IsURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}

// ExtractVideoID pulls the video identifier out of the usual URL shapes:
// watch?v=, youtu.be short links, /live/, /embed/ and /v/ paths.
func ExtractVideoID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "youtube", "extract id", "invalid URL", err)
	}

	host := strings.ToLower(u.Host)
	if strings.Contains(host, "youtu.be") {
		if id := firstPathSegment(u.Path); id != "" {
			return id, nil
		}
	}
	if strings.Contains(host, "youtube.com") {
		if strings.HasPrefix(u.Path, "/watch") {
			if id := u.Query().Get("v"); id != "" {
				return id, nil
			}
		}
		for _, prefix := range []string{"/live/", "/embed/", "/v/", "/shorts/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); id != "" {
					return id, nil
				}
			}
		}
	}
	return "", services.Wrap(services.ErrValidation, "youtube", "extract id", fmt.Sprintf("no video ID in %q", raw), nil)
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexAny(path, "/?"); idx != -1 {
		path = path[:idx]
	}
	return path
}

// Client runs yt-dlp. Format selects the download stream; metadata lookups
// ignore it.
type Client struct {
	Binary string
	Format string
}

func NewClient(binary, format string) *Client {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Client{Binary: binary, Format: format}
}

// FetchMetadata dumps and parses the video's JSON metadata without
// downloading anything.
func (c *Client) FetchMetadata(ctx context.Context, videoURL string) (*Metadata, error) {
	cmd := exec.CommandContext(ctx, c.Binary,
		"-J",
		"--no-warnings",
		"--no-playlist",
		videoURL)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, services.Wrap(services.ErrExternalTool, "youtube", "fetch metadata", strings.TrimSpace(stderr.String()), err)
	}
	return parseMetadata(stdout.Bytes())
}

func parseMetadata(raw []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "youtube", "fetch metadata", "parse yt-dlp JSON", err)
	}
	if strings.TrimSpace(meta.ID) == "" {
		return nil, services.Wrap(services.ErrExternalTool, "youtube", "fetch metadata", "missing video ID in yt-dlp output", nil)
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = meta.ID
	}
	return &meta, nil
}

// videoExtensions lists the container formats yt-dlp may produce for the
// configured stream selection, in probe order.
var videoExtensions = []string{".mp4", ".mkv", ".webm"}

// Download fetches the video into outputDir named <id>.<ext> and returns the
// path. A previously downloaded file short-circuits the download so repeated
// scans of the same video stay cheap.
func (c *Client) Download(ctx context.Context, videoURL, videoID, outputDir string) (string, error) {
	if existing := findDownloaded(outputDir, videoID); existing != "" {
		return existing, nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "youtube", "download", "create output directory", err)
	}

	args := []string{
		"--no-warnings",
		"--no-playlist",
		"-o", filepath.Join(outputDir, videoID+".%(ext)s"),
	}
	if c.Format != "" {
		args = append(args, "-f", c.Format)
	}
	args = append(args, videoURL)

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", services.Wrap(services.ErrExternalTool, "youtube", "download", strings.TrimSpace(stderr.String()), err)
	}

	if path := findDownloaded(outputDir, videoID); path != "" {
		return path, nil
	}
	return "", services.Wrap(services.ErrExternalTool, "youtube", "download", fmt.Sprintf("downloaded file not found for video %s", videoID), nil)
}

func findDownloaded(outputDir, videoID string) string {
	for _, ext := range videoExtensions {
		candidate := filepath.Join(outputDir, videoID+ext)
		if info, err := os.Stat(candidate); err == nil && info.Size() > 0 {
			return candidate
		}
	}
	return ""
}

// ListChannelUploads returns the uploads of a channel in the order yt-dlp
// reports them, newest first. Only identifiers and titles are fetched.
func (c *Client) ListChannelUploads(ctx context.Context, channelURL string) ([]Entry, error) {
	cmd := exec.CommandContext(ctx, c.Binary,
		"-J",
		"--flat-playlist",
		"--no-warnings",
		channelURL)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, services.Wrap(services.ErrExternalTool, "youtube", "list uploads", strings.TrimSpace(stderr.String()), err)
	}
	return parseChannelListing(stdout.Bytes())
}

func parseChannelListing(raw []byte) ([]Entry, error) {
	var listing struct {
		Entries []Entry `json:"entries"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "youtube", "list uploads", "parse yt-dlp JSON", err)
	}
	entries := make([]Entry, 0, len(listing.Entries))
	for _, e := range listing.Entries {
		if e.ID != "" {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
