// Package attr converts an item's dynamic attributes between form values,
// the serialized JSON document stored on the item row, and display text.
package attr

import (
	"encoding/json"
	"sort"
	"strings"

	"revive/internal/domain"
)

// Encode maps raw form values onto the category's field definitions. The
// result has one entry per definition, empty values included, so a rejected
// form can round-trip back to the UI for re-editing. Labels of required
// fields left empty are collected into missing.
func Encode(fields []domain.FieldDef, raw map[string]string) (attrs map[string]string, missing []string) {
	attrs = make(map[string]string, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(raw[f.Key])
		attrs[f.Key] = v
		if f.Required && v == "" {
			missing = append(missing, f.Label)
		}
	}
	return attrs, missing
}

// Marshal serializes an attribute map for storage.
func Marshal(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return ""
	}
	return string(b)
}

// Decode parses a serialized attribute document. Blank input, broken JSON or
// a non-object payload all yield an empty map; this path never fails, so a
// corrupt row still renders.
func Decode(serialized string) map[string]string {
	serialized = strings.TrimSpace(serialized)
	if serialized == "" {
		return map[string]string{}
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(serialized), &out); err != nil || out == nil {
		return map[string]string{}
	}
	return out
}

// Render turns a serialized attribute document into "Label: value" display
// text. Keys the current schema no longer defines fall back to the raw key,
// since categories can be re-edited after items were created. Returns ""
// when no attribute has a value.
func Render(fields []domain.FieldDef, serialized string) string {
	values := Decode(serialized)
	if len(values) == 0 {
		return ""
	}

	var parts []string
	rendered := map[string]bool{}
	for _, f := range fields {
		if v := values[f.Key]; v != "" {
			parts = append(parts, f.Label+": "+v)
			rendered[f.Key] = true
		}
	}

	// Leftover keys outside the current schema, in stable order.
	var rest []string
	for k, v := range values {
		if v != "" && !rendered[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		parts = append(parts, k+": "+values[k])
	}

	return strings.Join(parts, " · ")
}
