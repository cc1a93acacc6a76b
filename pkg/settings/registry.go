// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package settings contains the setting model and the registry of known
// settings, their default values, kinds and numeric bounds.
package settings

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/stacklok/prefs/pkg/logger"
)

// Group is the section a setting is presented under.
type Group string

const (
	// GroupAutoClean holds the automatic cleaning settings
	GroupAutoClean Group = "auto-clean"
	// GroupExpression holds the defaults for new expressions
	GroupExpression Group = "expression"
	// GroupOtherBrowsing holds browser data settings beyond cookies
	GroupOtherBrowsing Group = "other-browsing"
	// GroupExtension holds extension behaviour settings
	GroupExtension Group = "extension"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// FieldSpec defines a registered setting.
type FieldSpec struct {
	// Name is the unique identifier used in stores and import/export payloads.
	Name string `validate:"required,setting_name"`
	// Default is the value used when nothing has been persisted. Its kind is the
	// kind of the setting.
	Default Value
	// Min and Max are the inclusive bounds of an integer setting.
	Min *int64
	Max *int64
	// Group is the section the setting belongs to.
	Group Group `validate:"required,oneof=auto-clean expression other-browsing extension"`
	// DisplayName is a short human readable label.
	DisplayName string `validate:"required"`
	// HelpText is a one line description.
	HelpText string
	// HelpAnchor points at the setting's section in the user documentation.
	HelpAnchor string `validate:"omitempty,startswith=#"`
}

// Kind returns the kind of the setting.
func (f FieldSpec) Kind() Kind {
	return f.Default.Kind()
}

// Bounded reports whether the setting has numeric bounds.
func (f FieldSpec) Bounded() bool {
	return f.Min != nil && f.Max != nil
}

func newSpecValidator() *validator.Validate {
	v := validator.New()
	// registering a static tag on a fresh validator cannot fail
	_ = v.RegisterValidation("setting_name", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	return v
}

func validateSpec(v *validator.Validate, spec FieldSpec) error {
	if err := v.Struct(spec); err != nil {
		return fmt.Errorf("setting %q: %w", spec.Name, err)
	}
	if !spec.Default.Kind().Valid() {
		return fmt.Errorf("setting %q: default value is required", spec.Name)
	}
	if (spec.Min == nil) != (spec.Max == nil) {
		return fmt.Errorf("setting %q: both min and max must be set", spec.Name)
	}
	if !spec.Bounded() {
		return nil
	}
	if spec.Kind() != KindInt {
		return fmt.Errorf("setting %q: bounds are only allowed on %s settings", spec.Name, KindInt)
	}
	if *spec.Min > *spec.Max {
		return fmt.Errorf("setting %q: min %d is greater than max %d", spec.Name, *spec.Min, *spec.Max)
	}
	if d := spec.Default.AsInt(); d < *spec.Min || d > *spec.Max {
		return fmt.Errorf("setting %q: default %d is outside [%d, %d]", spec.Name, d, *spec.Min, *spec.Max)
	}
	return nil
}

// Registry is the fixed table of known settings. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	specs map[string]FieldSpec
	order []string
}

// NewRegistry builds a registry from specs, preserving their order.
func NewRegistry(specs ...FieldSpec) (*Registry, error) {
	v := newSpecValidator()
	r := &Registry{
		specs: make(map[string]FieldSpec, len(specs)),
		order: make([]string, 0, len(specs)),
	}
	for _, spec := range specs {
		if err := validateSpec(v, spec); err != nil {
			return nil, err
		}
		if _, exists := r.specs[spec.Name]; exists {
			return nil, fmt.Errorf("setting %q is registered twice", spec.Name)
		}
		r.specs[spec.Name] = spec
		r.order = append(r.order, spec.Name)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid table.
func MustRegistry(specs ...FieldSpec) *Registry {
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(fmt.Sprintf("invalid settings registry: %v", err))
	}
	return r
}

// KnownNames returns every registered name in registration order.
func (r *Registry) KnownNames() []string {
	return slices.Clone(r.order)
}

// Specs returns every field spec in registration order.
func (r *Registry) Specs() []FieldSpec {
	out := make([]FieldSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.specs[name])
	}
	return out
}

// IsKnown reports whether name is registered.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.specs[name]
	return ok
}

// Spec returns the field spec for name.
func (r *Registry) Spec(name string) (FieldSpec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// TypeOf returns the kind of name.
func (r *Registry) TypeOf(name string) (Kind, error) {
	spec, ok := r.specs[name]
	if !ok {
		return "", &UnknownSettingError{Name: name}
	}
	return spec.Kind(), nil
}

// Defaults returns a snapshot holding every setting at its default value.
func (r *Registry) Defaults() Snapshot {
	snap := make(Snapshot, len(r.order))
	for _, name := range r.order {
		snap[name] = Setting{Name: name, Value: r.specs[name].Default}
	}
	return snap
}

// Validate checks that s names a known setting, has the registered kind and,
// for bounded settings, lies within the inclusive bounds.
func (r *Registry) Validate(s Setting) error {
	spec, ok := r.specs[s.Name]
	if !ok {
		return &UnknownSettingError{Name: s.Name}
	}
	if s.Value.Kind() != spec.Kind() {
		return &TypeMismatchError{Name: s.Name, Want: spec.Kind(), Got: s.Value.Kind()}
	}
	if spec.Bounded() {
		if v := s.Value.AsInt(); v < *spec.Min || v > *spec.Max {
			return &RangeError{Name: s.Name, Min: *spec.Min, Max: *spec.Max, Value: v}
		}
	}
	return nil
}

// Restore merges persisted settings over the defaults. Entries that are unknown,
// of the wrong kind or out of range are dropped and the default is kept, so the
// result always holds one valid entry per known name.
func (r *Registry) Restore(persisted []Setting) Snapshot {
	snap := r.Defaults()
	for _, s := range persisted {
		if err := r.Validate(s); err != nil {
			if errors.Is(err, ErrUnknownSetting) {
				logger.Warnw("ignoring unknown persisted setting", "setting", s.Name)
			} else {
				logger.Warnw("ignoring invalid persisted setting, using default",
					"setting", s.Name, "error", err)
			}
			continue
		}
		snap[s.Name] = s
	}
	return snap
}
