// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package coordinator

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stacklok/prefs/pkg/logger"
	"github.com/stacklok/prefs/pkg/settings"
)

// Update outcomes used as the "result" label.
const (
	resultAccepted     = "accepted"
	resultUnknown      = "unknown_setting"
	resultTypeMismatch = "type_mismatch"
	resultOutOfRange   = "out_of_range"
	resultStoreError   = "store_error"
)

type metrics struct {
	updates *prometheus.CounterVec
	resets  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prefs",
				Name:      "setting_updates_total",
				Help:      "Total number of setting updates by result",
			},
			[]string{"result"},
		),
		resets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "prefs",
				Name:      "setting_resets_total",
				Help:      "Total number of resets to defaults",
			},
		),
	}
	if reg == nil {
		return m
	}
	m.updates = register(reg, m.updates)
	m.resets = register(reg, m.resets)
	return m
}

// register adds c to reg, reusing an identical collector registered earlier by
// another coordinator on the same registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	logger.Warnf("unable to register settings metrics: %v", err)
	return c
}

func (m *metrics) observeUpdate(err error) {
	m.updates.WithLabelValues(resultOf(err)).Inc()
}

func (m *metrics) observeReset() {
	m.resets.Inc()
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultAccepted
	case errors.Is(err, settings.ErrUnknownSetting):
		return resultUnknown
	case errors.Is(err, settings.ErrTypeMismatch):
		return resultTypeMismatch
	case errors.Is(err, settings.ErrOutOfRange):
		return resultOutOfRange
	default:
		return resultStoreError
	}
}
