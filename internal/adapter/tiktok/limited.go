package tiktok

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"creator-ads/internal/core/domain"
	"creator-ads/internal/core/port"
)

// Limited bounds every call to the wrapped source and verifier by a
// timeout and a shared rate limit. Transport failures are reported as
// domain.ErrEngagementSourceUnavailable; domain.ErrVideoNotFound passes
// through unchanged.
type Limited struct {
	source   port.EngagementSource
	verifier port.IdentityVerifier
	limiter  *rate.Limiter
	timeout  time.Duration
}

// NewLimited wraps source and verifier. rps <= 0 disables rate limiting.
func NewLimited(source port.EngagementSource, verifier port.IdentityVerifier, timeout time.Duration, rps float64, burst int) *Limited {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Limited{
		source:   source,
		verifier: verifier,
		limiter:  rate.NewLimiter(limit, max(burst, 1)),
		timeout:  timeout,
	}
}

func (l *Limited) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit: %w", domain.ErrEngagementSourceUnavailable, err)
	}
	err := fn(ctx)
	switch {
	case err == nil, errors.Is(err, domain.ErrVideoNotFound), errors.Is(err, domain.ErrInvalidInput):
		return err
	case errors.Is(err, domain.ErrEngagementSourceUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrEngagementSourceUnavailable, err)
	}
}

// FetchStats implements port.EngagementSource.
func (l *Limited) FetchStats(ctx context.Context, videoLink string) (domain.EngagementStats, error) {
	var stats domain.EngagementStats
	err := l.call(ctx, func(ctx context.Context) error {
		var err error
		stats, err = l.source.FetchStats(ctx, videoLink)
		return err
	})
	return stats, err
}

// OwnerOf implements port.IdentityVerifier.
func (l *Limited) OwnerOf(ctx context.Context, videoID string) (string, error) {
	var owner string
	err := l.call(ctx, func(ctx context.Context) error {
		var err error
		owner, err = l.verifier.OwnerOf(ctx, videoID)
		return err
	})
	return owner, err
}

var (
	_ port.EngagementSource = (*Limited)(nil)
	_ port.IdentityVerifier = (*Limited)(nil)
	_ port.EngagementSource = (*Catalogue)(nil)
	_ port.IdentityVerifier = (*Catalogue)(nil)
)
