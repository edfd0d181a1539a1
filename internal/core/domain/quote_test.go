package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_EffectiveStatus(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	expires := domain.ComputeExpiry(created, 30)
	require.Equal(t, time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC), expires)

	tests := []struct {
		name   string
		stored domain.QuoteStatus
		now    time.Time
		want   domain.QuoteStatus
	}{
		{"draft within window", domain.QuoteDraft, expires.Add(-time.Hour), domain.QuoteDraft},
		{"draft exactly at expiry", domain.QuoteDraft, expires, domain.QuoteDraft},
		{"draft past expiry", domain.QuoteDraft, expires.Add(time.Second), domain.QuoteExpired},
		{"sent past expiry", domain.QuoteSent, expires.Add(24 * time.Hour), domain.QuoteExpired},
		{"accepted never expires", domain.QuoteAccepted, expires.Add(24 * time.Hour), domain.QuoteAccepted},
		{"rejected never expires", domain.QuoteRejected, expires.Add(24 * time.Hour), domain.QuoteRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := domain.Quote{Status: tt.stored, ExpiresAt: expires}
			assert.Equal(t, tt.want, q.EffectiveStatus(tt.now))
		})
	}
}

func TestQuote_Transitions(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	fresh := func(status domain.QuoteStatus) *domain.Quote {
		return &domain.Quote{QuoteID: "QT-1", Status: status, ExpiresAt: now.AddDate(0, 0, 5)}
	}

	q := fresh(domain.QuoteDraft)
	require.NoError(t, q.TransitionTo(domain.QuoteSent, now))
	require.NoError(t, q.TransitionTo(domain.QuoteAccepted, now))
	assert.ErrorIs(t, q.TransitionTo(domain.QuoteRejected, now), apperrors.ErrInvalidState)

	q = fresh(domain.QuoteDraft)
	assert.ErrorIs(t, q.TransitionTo(domain.QuoteAccepted, now), apperrors.ErrInvalidState, "draft cannot skip sent")

	q = fresh(domain.QuoteSent)
	assert.ErrorIs(t, q.TransitionTo(domain.QuoteDraft, now), apperrors.ErrInvalidState, "no backward transitions")

	q = fresh(domain.QuoteSent)
	later := now.AddDate(0, 0, 6)
	err := q.TransitionTo(domain.QuoteAccepted, later)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "expired quotes are terminal")
	assert.Equal(t, domain.QuoteSent, q.Status, "failed transition leaves stored status untouched")
}

func TestQuote_EditAndDelete(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	draft := domain.Quote{Status: domain.QuoteDraft, ExpiresAt: now.Add(time.Hour)}
	assert.NoError(t, draft.EnsureEditable(now))
	assert.NoError(t, draft.EnsureDeletable())

	sent := domain.Quote{Status: domain.QuoteSent, ExpiresAt: now.Add(time.Hour)}
	assert.ErrorIs(t, sent.EnsureEditable(now), apperrors.ErrInvalidState)
	assert.ErrorIs(t, sent.EnsureDeletable(), apperrors.ErrInvalidState)

	expiredDraft := domain.Quote{Status: domain.QuoteDraft, ExpiresAt: now.Add(-time.Hour)}
	assert.ErrorIs(t, expiredDraft.EnsureEditable(now), apperrors.ErrInvalidState)
	assert.NoError(t, expiredDraft.EnsureDeletable())
}

func TestQuote_EnsureConvertible(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	q := domain.Quote{QuoteID: "QT-1", Status: domain.QuoteAccepted, ExpiresAt: now.Add(-time.Hour)}
	assert.NoError(t, q.EnsureConvertible(now), "accepted quotes do not expire")

	invID := "INV-1"
	q.ConvertedInvoiceID = &invID
	assert.ErrorIs(t, q.EnsureConvertible(now), apperrors.ErrInvalidState)

	sent := domain.Quote{QuoteID: "QT-2", Status: domain.QuoteSent, ExpiresAt: now.Add(time.Hour)}
	assert.ErrorIs(t, sent.EnsureConvertible(now), apperrors.ErrInvalidState)
}
