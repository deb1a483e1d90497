// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
)

// paramError reports a missing or malformed tool argument. It becomes an
// InvalidParams response whose data names the parameter.
type paramError struct {
	Parameter string
	Reason    string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Parameter, e.Reason)
}

func missing(name string) *paramError {
	return &paramError{Parameter: name, Reason: "missing required parameter"}
}

// arguments holds the raw tools/call arguments. Accessors assume
// validateArguments has already run, so type mismatches read as absent.
type arguments map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// has reports whether name was supplied with a non-null value.
func (a arguments) has(name string) bool {
	raw, ok := a[name]
	return ok && !isNull(raw)
}

func (a arguments) str(name string) string {
	var s string
	if a.has(name) {
		_ = json.Unmarshal(a[name], &s)
	}
	return s
}

// optStr returns nil when name is absent.
func (a arguments) optStr(name string) *string {
	if !a.has(name) {
		return nil
	}
	s := a.str(name)
	return &s
}

func (a arguments) strs(name string) []string {
	var out []string
	if a.has(name) {
		_ = json.Unmarshal(a[name], &out)
	}
	return out
}

func (a arguments) integer(name string, def int) int {
	if !a.has(name) {
		return def
	}
	var f float64
	if err := json.Unmarshal(a[name], &f); err != nil {
		return def
	}
	return int(f)
}

func (a arguments) boolean(name string) *bool {
	if !a.has(name) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(a[name], &b); err != nil {
		return nil
	}
	return &b
}

// require enforces parameters that only some actions need.
func (a arguments) require(action string, names ...string) error {
	for _, n := range names {
		if !a.has(n) {
			return &paramError{Parameter: n, Reason: "required for " + action}
		}
	}
	return nil
}

// nonNegative reads an integer argument that must be >= 0.
func (a arguments) nonNegative(name string, def int) (int, error) {
	v := a.integer(name, def)
	if v < 0 {
		return 0, &paramError{Parameter: name, Reason: "must not be negative"}
	}
	return v, nil
}

// validateArguments checks args against schema: required parameters are
// present and every supplied parameter has the declared type and, for
// enumerations, an allowed value. Parameters the schema does not declare are
// ignored. Checks run in name order so the reported parameter is stable.
func validateArguments(schema Schema, args arguments) error {
	for _, name := range schema.Required {
		if !args.has(name) {
			return missing(name)
		}
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, ok := schema.Properties[name]
		if !ok || isNull(args[name]) {
			continue
		}
		if reason := checkValue(prop, args[name]); reason != "" {
			return &paramError{Parameter: name, Reason: reason}
		}
	}
	return nil
}

func checkValue(prop Property, raw json.RawMessage) string {
	switch prop.Type {
	case "string":
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return "expected a string"
		}
		if len(prop.Enum) > 0 && !slices.Contains(prop.Enum, s) {
			return fmt.Sprintf("must be one of %v", prop.Enum)
		}
	case "integer":
		var f float64
		if json.Unmarshal(raw, &f) != nil || f != math.Trunc(f) {
			return "expected an integer"
		}
	case "boolean":
		var b bool
		if json.Unmarshal(raw, &b) != nil {
			return "expected a boolean"
		}
	case "array":
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return "expected an array"
		}
		if prop.Items == nil {
			return ""
		}
		for i, item := range items {
			if reason := checkValue(*prop.Items, item); reason != "" {
				return fmt.Sprintf("item %d: %s", i, reason)
			}
		}
	}
	return ""
}
