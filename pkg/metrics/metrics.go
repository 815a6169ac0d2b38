// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourceyorg/navforge/pkg/api"
)

// Namespace is the metrics namespace
const Namespace = "navforge"

// Error types used as label values of the errors counter
const (
	ErrorTypeConfiguration = "configuration"
	ErrorTypeAssetNotFound = "asset_not_found"
	ErrorTypeOther         = "other"
)

// Build collects the metrics of a single build
type Build struct {
	registry *prometheus.Registry
	groups   prometheus.Gauge
	items    prometheus.Gauge
	errors   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewBuild creates the build metrics in a dedicated registry, GitHub
// client metrics included
func NewBuild() *Build {
	b := &Build{
		registry: prometheus.NewRegistry(),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sidebar_groups",
			Help:      "Number of sidebar groups of the last build.",
		}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sidebar_items",
			Help:      "Number of sidebar items of the last build.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "build_errors_total",
			Help:      "Configuration and asset errors by type.",
		}, []string{"type"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of builds.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10},
		}),
	}
	b.registry.MustRegister(b.groups, b.items, b.errors, b.duration)
	RegisterClientMetrics(b.registry)
	return b
}

// Registry exposes the registry holding the build metrics
func (b *Build) Registry() *prometheus.Registry {
	return b.registry
}

// ObserveSidebar records the size of a built sidebar
func (b *Build) ObserveSidebar(groups []*api.Group) {
	items := 0
	for _, g := range groups {
		items += len(g.Items)
	}
	b.groups.Set(float64(len(groups)))
	b.items.Set(float64(items))
}

// ObserveError counts err by type. Errors collected in a multierror are counted one by one.
func (b *Build) ObserveError(err error) {
	if err == nil {
		return
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			b.ObserveError(e)
		}
		return
	}
	b.errors.WithLabelValues(ErrorType(err)).Inc()
}

// ObserveDuration records the duration of a build
func (b *Build) ObserveDuration(d time.Duration) {
	b.duration.Observe(d.Seconds())
}

// WriteToTextfile writes the metrics in the node exporter textfile format
func (b *Build) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, b.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// ErrorType classifies err for the errors counter
func ErrorType(err error) string {
	var (
		configurationErr *api.ConfigurationError
		assetErr         *api.AssetNotFoundError
	)
	switch {
	case errors.As(err, &configurationErr):
		return ErrorTypeConfiguration
	case errors.As(err, &assetErr):
		return ErrorTypeAssetNotFound
	default:
		return ErrorTypeOther
	}
}
