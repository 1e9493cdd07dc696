// Package metric provides Prometheus instrumentation for the unit
// registry: conversion and resolution counters plus definition-table
// gauges, all under the "pinty" namespace. Metrics are optional; the
// registry works without them.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tohch4/pinty/errors"
)

// Conversion status label values.
const (
	StatusOK                 = "ok"
	StatusDimensionality     = "dimensionality_error"
	StatusUndefined          = "undefined_unit"
	StatusOffsetAmbiguous    = "offset_ambiguous"
	StatusLogarithmicIllegal = "logarithmic_illegal"
	StatusContextBridged     = "context_bridged"
	StatusCircularDefinition = "circular_definition"
)

// Metrics contains the registry-level metrics.
type Metrics struct {
	ConversionsTotal *prometheus.CounterVec
	ResolutionsTotal *prometheus.CounterVec
	Definitions      *prometheus.GaugeVec
	ParseErrorsTotal prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all registry metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pinty",
				Subsystem: "registry",
				Name:      "conversions_total",
				Help:      "Total number of conversion-factor computations by outcome",
			},
			[]string{"status"},
		),
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pinty",
				Subsystem: "registry",
				Name:      "resolutions_total",
				Help:      "Total number of name resolutions by outcome",
			},
			[]string{"result"},
		),
		Definitions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pinty",
				Subsystem: "registry",
				Name:      "definitions",
				Help:      "Number of registered definitions by kind",
			},
			[]string{"kind"},
		),
		ParseErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "pinty",
				Subsystem: "registry",
				Name:      "parse_errors_total",
				Help:      "Total number of unit-expression parse failures",
			},
		),
	}
}

// Register registers all metrics with the provided registerer.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		m.ConversionsTotal,
		m.ResolutionsTotal,
		m.Definitions,
		m.ParseErrorsTotal,
	} {
		if err := registerer.Register(collector); err != nil {
			return errors.WrapInvalid(err, "Metrics", "Register", "register collector")
		}
	}
	return nil
}

// Conversion records a conversion outcome. Nil-safe so callers do not
// guard every call site.
func (m *Metrics) Conversion(status string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(status).Inc()
}

// Resolution records a name-resolution outcome.
func (m *Metrics) Resolution(result string) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(result).Inc()
}

// DefinitionCount sets the definition gauge for a kind.
func (m *Metrics) DefinitionCount(kind string, n int) {
	if m == nil {
		return
	}
	m.Definitions.WithLabelValues(kind).Set(float64(n))
}

// ParseError records a unit-expression parse failure.
func (m *Metrics) ParseError() {
	if m == nil {
		return
	}
	m.ParseErrorsTotal.Inc()
}
