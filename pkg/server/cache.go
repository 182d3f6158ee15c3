package server

import (
	"time"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/report"
	"github.com/patrickmn/go-cache"
)

const (
	viewCacheDuration    = 30 * time.Minute
	viewCleanupInterval  = time.Hour
	chartCacheDuration   = 30 * time.Minute
	chartCleanupInterval = time.Hour
)

// views memoizes derived views and rendered charts per parameter tuple.
// Cached values are never mutated after insertion.
type views struct {
	views  *cache.Cache
	charts *cache.Cache
}

func newViews() *views {
	return &views{
		views:  cache.New(viewCacheDuration, viewCleanupInterval),
		charts: cache.New(chartCacheDuration, chartCleanupInterval),
	}
}

func (c *views) view(p estimator.Parameters, build func() (report.View, error)) (report.View, error) {
	key := p.Key()
	if v, ok := c.views.Get(key); ok {
		return v.(report.View), nil
	}
	v, err := build()
	if err != nil {
		return report.View{}, err
	}
	c.views.SetDefault(key, v)
	return v, nil
}

func (c *views) chart(p estimator.Parameters, name string, render func() ([]byte, error)) ([]byte, error) {
	key := p.Key() + ":" + name
	if b, ok := c.charts.Get(key); ok {
		return b.([]byte), nil
	}
	b, err := render()
	if err != nil {
		return nil, err
	}
	c.charts.SetDefault(key, b)
	return b, nil
}

func (c *views) flush() {
	c.views.Flush()
	c.charts.Flush()
}
