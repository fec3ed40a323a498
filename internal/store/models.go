package store

import "time"

// Status tracks a video through the scan lifecycle.
type Status string

const (
	StatusPending  Status = "pending"
	StatusScanning Status = "scanning"
	StatusScanned  Status = "scanned"
	StatusFailed   Status = "failed"
)

// Video is one queued or processed recording.
type Video struct {
	ID              int64
	VideoID         string
	Title           string
	UploadDate      string
	SourceURL       string
	Status          Status
	DurationSeconds float64
	OracleCalls     int
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ScannedAt       *time.Time
}

// Match is one confirmed match start inside a video.
type Match struct {
	ID               int64
	VideoRowID       int64
	TimestampSeconds int
	TimestampText    string
	Player1          string
	Player2          string
	ImagePath        string
	CreatedAt        time.Time
}

// Stats counts videos per lifecycle status.
type Stats struct {
	Total    int
	Pending  int
	Scanning int
	Scanned  int
	Failed   int
}
