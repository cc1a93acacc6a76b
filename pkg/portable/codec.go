// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package portable exports settings snapshots to a portable JSON document and
// validates documents being imported.
//
// The document maps each setting name to a {"name", "value"} object:
//
//	{
//	  "activeMode": {"name": "activeMode", "value": true},
//	  "delayBeforeClean": {"name": "delayBeforeClean", "value": 15}
//	}
package portable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/stacklok/prefs/pkg/settings"
)

// Codec converts snapshots to and from the portable document for one registry.
type Codec struct {
	registry *settings.Registry
	schema   *gojsonschema.Schema
}

// NewCodec creates a codec for reg.
func NewCodec(reg *settings.Registry) (*Codec, error) {
	schema, err := compileSchema(reg)
	if err != nil {
		return nil, err
	}
	return &Codec{registry: reg, schema: schema}, nil
}

type entry struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// pathKey escapes the characters gjson and sjson treat as path syntax.
func pathKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Marshal renders snap in registry order. The output is stable for identical
// input. Entries for names the registry does not know are rejected.
func (c *Codec) Marshal(snap settings.Snapshot) ([]byte, error) {
	for name := range snap {
		if !c.registry.IsKnown(name) {
			return nil, &settings.UnknownSettingError{Name: name}
		}
	}

	doc := []byte("{}")
	for _, name := range c.registry.KnownNames() {
		s, ok := snap[name]
		if !ok {
			continue
		}
		raw, err := json.Marshal(entry{Name: name, Value: s.Value.Interface()})
		if err != nil {
			return nil, fmt.Errorf("encoding setting %q: %w", name, err)
		}
		doc, err = sjson.SetRawBytes(doc, pathKey(name), raw)
		if err != nil {
			return nil, fmt.Errorf("encoding setting %q: %w", name, err)
		}
	}
	return pretty.Pretty(doc), nil
}

// Export writes the portable document for snap to w.
func (c *Codec) Export(w io.Writer, snap settings.Snapshot) error {
	doc, err := c.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc); err != nil {
		return fmt.Errorf("writing settings export: %w", err)
	}
	return nil
}

// Parse validates raw and returns one setting per key, in document order.
//
// Comments and trailing commas are tolerated. Any key the registry does not
// know fails the whole import with an UnknownKeysError listing all of them.
// Values must already have the registered kind; nothing is converted. Bounds
// are not checked here: they are enforced when each setting is applied.
// Parse never modifies a snapshot.
func (c *Codec) Parse(raw []byte) ([]settings.Setting, error) {
	if !utf8.Valid(raw) {
		return nil, &MalformedPayloadError{Reason: "payload is not valid UTF-8"}
	}

	// hujson may alias its input
	doc, err := hujson.Standardize(slices.Clone(raw))
	if err != nil {
		return nil, &MalformedPayloadError{Reason: "invalid JSON", Err: err}
	}
	if !gjson.ValidBytes(doc) {
		return nil, &MalformedPayloadError{Reason: "invalid JSON"}
	}

	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, &MalformedPayloadError{Reason: "payload must be a JSON object keyed by setting name"}
	}

	keys, err := c.collectKeys(root)
	if err != nil {
		return nil, err
	}

	if err := validateShape(c.schema, doc); err != nil {
		return nil, err
	}

	out := make([]settings.Setting, 0, len(keys))
	for _, key := range keys {
		// kinds were checked when the registry was built
		kind, _ := c.registry.TypeOf(key)
		value, err := decodeValue(key, kind, root.Get(pathKey(key)).Get("value"))
		if err != nil {
			return nil, err
		}
		out = append(out, settings.Setting{Name: key, Value: value})
	}
	return out, nil
}

// collectKeys returns the document keys in order, failing on duplicates and on
// any key the registry does not know.
func (c *Codec) collectKeys(root gjson.Result) ([]string, error) {
	var (
		keys      []string
		unknown   []string
		duplicate string
	)
	seen := make(map[string]bool)

	root.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if seen[name] {
			duplicate = name
			return false
		}
		seen[name] = true
		if !c.registry.IsKnown(name) {
			unknown = append(unknown, name)
			return true
		}
		keys = append(keys, name)
		return true
	})

	if duplicate != "" {
		return nil, &MalformedPayloadError{Reason: fmt.Sprintf("setting %q appears more than once", duplicate)}
	}
	if len(unknown) > 0 {
		return nil, &UnknownKeysError{Keys: unknown}
	}
	return keys, nil
}

func jsonKind(v gjson.Result) settings.Kind {
	switch v.Type {
	case gjson.True, gjson.False:
		return settings.KindBool
	case gjson.String:
		return settings.KindString
	case gjson.Number:
		return "number"
	default:
		return ""
	}
}

func decodeValue(name string, kind settings.Kind, v gjson.Result) (settings.Value, error) {
	mismatch := &settings.TypeMismatchError{Name: name, Want: kind, Got: jsonKind(v)}

	switch kind {
	case settings.KindBool:
		if v.Type == gjson.True || v.Type == gjson.False {
			return settings.BoolValue(v.Bool()), nil
		}
	case settings.KindString:
		if v.Type == gjson.String {
			return settings.StringValue(v.String()), nil
		}
	case settings.KindInt:
		if v.Type != gjson.Number {
			break
		}
		i, err := strconv.ParseInt(v.Raw, 10, 64)
		if err == nil {
			return settings.IntValue(i), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			// an integer literal outside int64
			break
		}
		// exponent or fraction notation of a whole number
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err == nil && !math.IsInf(f, 0) {
			if value, err := settings.ValueOf(f); err == nil {
				return value, nil
			}
		}
	}
	return settings.Value{}, mismatch
}

// ImportFile reads path and parses it. The file is read in full before parsing.
func (c *Codec) ImportFile(ctx context.Context, path string) ([]settings.Setting, error) {
	raw, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return c.Parse(raw)
}
