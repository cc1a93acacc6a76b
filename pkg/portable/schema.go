// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/stacklok/prefs/pkg/settings"
)

// entrySchema builds the JSON Schema every import is checked against: an
// object whose members are {name, value} pairs where name repeats the key.
// Kinds are checked separately so that a wrong kind surfaces as a type
// mismatch rather than as a malformed payload.
func entrySchema(reg *settings.Registry) map[string]any {
	properties := make(map[string]any)
	for _, name := range reg.KnownNames() {
		properties[name] = map[string]any{
			"type":     "object",
			"required": []string{"name", "value"},
			"properties": map[string]any{
				"name":  map[string]any{"type": "string", "const": name},
				"value": map[string]any{"type": []string{"boolean", "number", "string"}},
			},
		}
	}
	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": properties,
	}
}

func compileSchema(reg *settings.Registry) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(entrySchema(reg)))
	if err != nil {
		return nil, fmt.Errorf("invalid settings schema: %w", err)
	}
	return schema, nil
}

func validateShape(schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &MalformedPayloadError{Reason: "invalid JSON", Err: err}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &MalformedPayloadError{Reason: strings.Join(problems, "; ")}
}
