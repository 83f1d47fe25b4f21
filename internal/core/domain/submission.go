package domain

import (
	"regexp"
	"time"
)

// Submission is the video a marketer posted for an accepted application.
type Submission struct {
	VideoLink string
	VideoID   string
	Stats     SnapshotStats
}

// SnapshotStats is the last engagement read for a submitted video.
type SnapshotStats struct {
	Views       int64
	Likes       int64
	Comments    int64
	LastUpdated time.Time
	IsActive    bool
}

// ProcessedStats is the engagement already paid for.
type ProcessedStats struct {
	Views       int64
	Likes       int64
	ProcessedAt *time.Time
}

// EngagementStats is a point-in-time read from an engagement source.
type EngagementStats struct {
	Views       int64
	Likes       int64
	Comments    int64
	LastUpdated time.Time
}

// Merge folds a fresh read into the snapshot. Counters never go down, a
// lower read from the source is treated as a stale replica.
func (s *SnapshotStats) Merge(fresh EngagementStats, now time.Time) {
	s.Views = max(s.Views, fresh.Views)
	s.Likes = max(s.Likes, fresh.Likes)
	s.Comments = max(s.Comments, fresh.Comments)
	s.LastUpdated = now
}

var videoIDPattern = regexp.MustCompile(`/video/(\d+)`)

// ParseVideoID extracts the numeric video id from a TikTok link.
func ParseVideoID(link string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", ErrInvalidInput
	}
	return m[1], nil
}
