package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCounters(t *testing.T) {
	m := New()
	m.ObserveRender("quote", 10*time.Millisecond, nil)
	m.ObserveRender("quote", 10*time.Millisecond, errors.New("x"))
	m.ObserveEmail(nil)
	m.ObserveAssetFetch("https", errors.New("timeout"))
	m.ObserveCacheLookup(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("quote", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("quote", OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assetFetches.WithLabelValues("https", OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRender("invoice", time.Second, nil)
		m.ObserveEmail(nil)
		m.ObserveAssetFetch("s3", nil)
		m.ObserveCacheLookup(false)
	})
}

func TestNewTwiceDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
