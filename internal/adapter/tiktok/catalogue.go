package tiktok

import (
	"context"
	"sync"

	"creator-ads/internal/core/domain"
)

// Video is a published video known to the catalogue.
type Video struct {
	ID       string
	Owner    string
	Views    int64
	Likes    int64
	Comments int64
}

// Catalogue is an in-memory engagement source and identity verifier. It
// stands in for the scraping service in development and tests.
type Catalogue struct {
	mu     sync.RWMutex
	videos map[string]Video
}

// NewCatalogue returns a catalogue holding videos.
func NewCatalogue(videos ...Video) *Catalogue {
	c := &Catalogue{videos: make(map[string]Video, len(videos))}
	for _, v := range videos {
		c.videos[v.ID] = v
	}
	return c
}

// DemoVideos matches the demo marketers seeded into the store.
func DemoVideos() []Video {
	return []Video{
		{ID: "123456789", Owner: "marketer1", Views: 10000, Likes: 500},
		{ID: "987654321", Owner: "marketer2", Views: 50000, Likes: 2000},
		{ID: "111222333", Owner: "other_user", Views: 2000, Likes: 100},
	}
}

// Put adds or replaces a video.
func (c *Catalogue) Put(v Video) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.videos[v.ID] = v
}

// Grow adds engagement to a video. It reports false for unknown videos.
func (c *Catalogue) Grow(id string, views, likes int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.videos[id]
	if !ok {
		return false
	}
	v.Views += views
	v.Likes += likes
	c.videos[id] = v
	return true
}

// Remove deletes a video, as if its owner took it down.
func (c *Catalogue) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.videos, id)
}

func (c *Catalogue) lookup(id string) (Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.videos[id]
	if !ok {
		return Video{}, domain.ErrVideoNotFound
	}
	return v, nil
}

// FetchStats implements port.EngagementSource.
func (c *Catalogue) FetchStats(ctx context.Context, videoLink string) (domain.EngagementStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.EngagementStats{}, err
	}
	id, err := domain.ParseVideoID(videoLink)
	if err != nil {
		return domain.EngagementStats{}, err
	}
	v, err := c.lookup(id)
	if err != nil {
		return domain.EngagementStats{}, err
	}
	return domain.EngagementStats{Views: v.Views, Likes: v.Likes, Comments: v.Comments}, nil
}

// OwnerOf implements port.IdentityVerifier.
func (c *Catalogue) OwnerOf(ctx context.Context, videoID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := c.lookup(videoID)
	if err != nil {
		return "", err
	}
	return v.Owner, nil
}
