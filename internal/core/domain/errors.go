package domain

import "errors"

// Lookup and authorisation failures.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Validation failures. They are user-correctable and are surfaced verbatim.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotEligible          = errors.New("insufficient followers")
	ErrInsufficientCredits  = errors.New("insufficient connection coins")
	ErrCampaignInactive     = errors.New("campaign is not active")
	ErrCampaignFull         = errors.New("campaign slots full")
	ErrDuplicateApplication = errors.New("already applied")
	ErrOwnershipMismatch    = errors.New("video does not belong to your tiktok account")
	ErrCapacityFull         = errors.New("campaign capacity is full")
)

// Infrastructure failures.
var (
	// ErrEngagementSourceUnavailable is transient. The affected application
	// is skipped and picked up again by the next sweep.
	ErrEngagementSourceUnavailable = errors.New("engagement source unavailable")
	// ErrVideoNotFound is returned by engagement sources and identity
	// verifiers when the video does not exist (anymore).
	ErrVideoNotFound = errors.New("video not found")
	// ErrConflict reports a concurrent write. The unit of work is retried
	// with fresh state.
	ErrConflict = errors.New("persistence conflict")
	// ErrSweepInProgress is returned when a payout sweep is already running.
	ErrSweepInProgress = errors.New("payout sweep already in progress")
)
