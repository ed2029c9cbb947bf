package database

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolStatsCollector_NotNil(t *testing.T) {
	c := NewPoolStatsCollector(nil, "reviews")
	require.NotNil(t, c)
	assert.Equal(t, "reviews", c.service)
}

func TestPoolStatsCollector_Describe(t *testing.T) {
	c := NewPoolStatsCollector(nil, "reviews")

	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)

	descs := make([]*prometheus.Desc, 0, 16)
	for d := range ch {
		descs = append(descs, d)
	}

	assert.Len(t, descs, 8)
}

func TestPoolStatsCollector_ImplementsCollector(t *testing.T) {
	var _ prometheus.Collector = NewPoolStatsCollector(nil, "reviews")
}
