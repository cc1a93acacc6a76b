// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package visibility decides which settings apply to the current host and which
// advisories to show next to them.
//
// Evaluation is a pure function of the capability context and the settings
// snapshot. It keeps no state between calls and may run concurrently.
package visibility

import (
	"fmt"
	"slices"

	"github.com/stacklok/prefs/pkg/capability"
	"github.com/stacklok/prefs/pkg/settings"
)

// Decision is the outcome for one setting.
type Decision struct {
	Name       string
	Applicable bool
	// Warnings are ordered by kind and never contain duplicates.
	Warnings []WarningKind
}

// Report holds one Decision per registered setting in registry order.
type Report struct {
	decisions []Decision
	index     map[string]int
}

// Decisions returns every decision in registry order.
func (r Report) Decisions() []Decision {
	return slices.Clone(r.decisions)
}

// Get returns the decision for name.
func (r Report) Get(name string) (Decision, bool) {
	i, ok := r.index[name]
	if !ok {
		return Decision{}, false
	}
	return r.decisions[i], true
}

// Applicable reports whether name applies. Unknown names never apply.
func (r Report) Applicable(name string) bool {
	d, ok := r.Get(name)
	return ok && d.Applicable
}

// Warnings returns the warnings for name.
func (r Report) Warnings(name string) []WarningKind {
	d, _ := r.Get(name)
	return slices.Clone(d.Warnings)
}

// Engine evaluates a rule table against a registry.
type Engine struct {
	registry      *settings.Registry
	applicability map[string][]Condition
	advisories    map[string][]Advisory
}

// NewEngine validates rules against reg and builds an engine.
func NewEngine(reg *settings.Registry, rules Rules) (*Engine, error) {
	e := &Engine{
		registry:      reg,
		applicability: make(map[string][]Condition),
		advisories:    make(map[string][]Advisory),
	}

	for _, rule := range rules.Applicability {
		if !reg.IsKnown(rule.Setting) {
			return nil, fmt.Errorf("applicability rule for %w", &settings.UnknownSettingError{Name: rule.Setting})
		}
		if rule.When == nil {
			return nil, fmt.Errorf("applicability rule for %q has no condition", rule.Setting)
		}
		e.applicability[rule.Setting] = append(e.applicability[rule.Setting], rule.When)
	}

	for _, rule := range rules.Advisories {
		if !reg.IsKnown(rule.Setting) {
			return nil, fmt.Errorf("advisory rule for %w", &settings.UnknownSettingError{Name: rule.Setting})
		}
		if rule.When == nil {
			return nil, fmt.Errorf("advisory %s for %q has no condition", rule.Warning, rule.Setting)
		}
		if _, ok := warningNames[rule.Warning]; !ok {
			return nil, fmt.Errorf("advisory for %q uses unknown warning kind %d", rule.Setting, rule.Warning)
		}
		e.advisories[rule.Setting] = append(e.advisories[rule.Setting], rule)
	}

	return e, nil
}

// NewDefaultEngine builds an engine for the built-in registry and rules.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(settings.Default(), DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("invalid built-in visibility rules: %v", err))
	}
	return e
}

// Evaluate computes the decision for every registered setting.
func (e *Engine) Evaluate(host capability.Context, snap settings.Snapshot) Report {
	facts := Facts{Host: host, Snapshot: snap}
	names := e.registry.KnownNames()

	report := Report{
		decisions: make([]Decision, 0, len(names)),
		index:     make(map[string]int, len(names)),
	}

	for _, name := range names {
		d := Decision{Name: name, Applicable: true}

		for _, when := range e.applicability[name] {
			if !when(facts) {
				d.Applicable = false
				break
			}
		}

		for _, adv := range e.advisories[name] {
			if adv.When(facts) {
				d.Warnings = append(d.Warnings, adv.Warning)
			}
		}
		slices.Sort(d.Warnings)
		d.Warnings = slices.Compact(d.Warnings)

		report.index[name] = len(report.decisions)
		report.decisions = append(report.decisions, d)
	}

	return report
}
