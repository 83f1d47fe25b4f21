package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-ads/internal/core/domain"
)

func TestLoadPolicyDefaults(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy().Tiers, p.Tiers)
}

func TestDecodePolicyOverrides(t *testing.T) {
	doc := `
abort_penalty_ratio: "0.2"
free_aborts: 0
reopen_window: 48h
plans:
  - name: Starter
    min_budget: 0
  - name: Pro
    min_budget: 1000
`
	p, err := DecodePolicy(strings.NewReader(doc))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.2").Equal(p.AbortPenaltyRatio))
	assert.Equal(t, 0, p.FreeAborts)
	assert.Equal(t, 48*time.Hour, p.ReopenWindow)
	assert.Equal(t, "Pro", p.PlanFor(decimal.NewFromInt(1500)))
	// Untouched keys keep the built-in values.
	assert.Len(t, p.Tiers, 3)
	assert.True(t, decimal.RequireFromString("0.9").Equal(p.LowBudgetRatio))
}

func TestDecodePolicyTiers(t *testing.T) {
	doc := `
tiers:
  - name: Everyone
    max_followers: 0
    views_per_marketer: 100
    likes_per_marketer: 10
    rate_view: 0.01
    rate_like: 0.1
`
	p, err := DecodePolicy(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, p.Tiers, 1)
	assert.Equal(t, "Everyone", p.TierFor(1_000_000).Name)
	assert.True(t, decimal.NewFromInt(2).Equal(p.Tiers[0].UnitCost()))
}

func TestDecodePolicyRejectsUnknownKeys(t *testing.T) {
	_, err := DecodePolicy(strings.NewReader("abort_penalty: 1\n"))
	assert.Error(t, err)
}

func TestDecodePolicyValidates(t *testing.T) {
	_, err := DecodePolicy(strings.NewReader("reopen_window: 0s\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("application_cost: 2\n"), 0o600))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.ApplicationCost)

	_, err = LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
