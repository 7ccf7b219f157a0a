// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics holds the process wide meters of the node.
// Meters are no-ops until InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

var metrics = defaultNoopMetrics()

// Metrics creates meters, returning the existing one when a name is reused.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// HTTPHandler serves the meters in the prometheus text format.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

var (
	// BucketHTTPReqs is in milliseconds.
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 4000, 5000, 10000,
	}
	// BucketExecute is in microseconds. An engine call only touches cached state
	// until it commits.
	BucketExecute = []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000, 50_000}
)

type (
	HistogramMeter interface {
		Observe(int64)
	}
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
	// CountMeter only goes up, until the process restarts.
	CountMeter interface {
		Add(int64)
	}
	CountVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	GaugeVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
)

func Counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

func Gauge(name string) GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) }

// The LazyLoad helpers declare package level meters whose backing implementation
// is picked on first use, after the node had the chance to enable prometheus.

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return sync.OnceValue(func() HistogramMeter {
		return metrics.GetOrCreateHistogramMeter(name, buckets)
	})
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return sync.OnceValue(func() HistogramVecMeter {
		return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
	})
}

func LazyLoadCounter(name string) func() CountMeter {
	return sync.OnceValue(func() CountMeter {
		return metrics.GetOrCreateCountMeter(name)
	})
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return sync.OnceValue(func() CountVecMeter {
		return metrics.GetOrCreateCountVecMeter(name, labels)
	})
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return sync.OnceValue(func() GaugeMeter {
		return metrics.GetOrCreateGaugeMeter(name)
	})
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return sync.OnceValue(func() GaugeVecMeter {
		return metrics.GetOrCreateGaugeVecMeter(name, labels)
	})
}
