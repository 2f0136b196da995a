package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestObserveSale 验证成交指标累加
func TestObserveSale(t *testing.T) {
	before := testutil.ToFloat64(SalesCommittedTotal)

	ObserveSale(350)
	ObserveSale(1200)

	after := testutil.ToFloat64(SalesCommittedTotal)
	assert.Equal(t, before+2, after, "每次成交应使计数器+1")
}

// TestCacheCounters 验证缓存命中/未命中计数器
func TestCacheCounters(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHitsTotal)
	missesBefore := testutil.ToFloat64(CacheMissesTotal)

	CacheHitsTotal.Inc()
	CacheMissesTotal.Inc()
	CacheMissesTotal.Inc()

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(CacheHitsTotal))
	assert.Equal(t, missesBefore+2, testutil.ToFloat64(CacheMissesTotal))
}
