package datamodel

import (
	"sort"

	json "github.com/goccy/go-json"
)

// Top-level members that are part of the entity envelope rather than
// attributes.
var reservedKeys = map[string]bool{
	"@context": true,
	"id":       true,
	"@id":      true,
	"type":     true,
	"@type":    true,
}

// Parse decodes a JSON-LD Data Model document into a Document tree.
//
// It returns *ParseError when the input is not valid JSON and
// *SchemaMismatchError when the input is valid JSON but lacks the
// minimal envelope (object root with an "@context" member). A missing
// identifier or entity type is not an envelope failure; those surface
// as structural findings and rule verdicts so the rest of the document
// can still be assessed.
func Parse(data []byte) (*Document, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &SchemaMismatchError{Reason: "root is not a JSON object"}
	}

	rawCtx, ok := obj["@context"]
	if !ok {
		return nil, &SchemaMismatchError{Reason: "missing @context"}
	}

	doc := &Document{
		ID:      stringField(obj, "id", "@id"),
		Type:    stringField(obj, "type", "@type"),
		Context: contextEntries(rawCtx),
		Raw:     obj,
	}

	names := make([]string, 0, len(obj))
	for name := range obj {
		if !reservedKeys[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	doc.Attributes = make([]Attribute, 0, len(names))
	for _, name := range names {
		doc.Attributes = append(doc.Attributes, parseAttribute(name, obj[name]))
	}

	return doc, nil
}

func parseAttribute(name string, v any) Attribute {
	body, ok := v.(map[string]any)
	if !ok {
		return Attribute{Name: name, Kind: KindUnknown, Value: v}
	}

	declared, _ := body["type"].(string)
	kind, ok := ParseKind(declared)
	if !ok {
		return Attribute{Name: name, Kind: KindUnknown, RawKind: declared, Value: v}
	}

	attr := Attribute{
		Name:    name,
		Kind:    kind,
		RawKind: declared,
	}

	switch kind {
	case KindProperty, KindGeoProperty:
		attr.Value = body["value"]
	case KindRelationship:
		attr.Value = body["object"]
	case KindUnknown:
		// unreachable, ParseKind returned ok
	}

	attr.UnitCode, _ = body["unitCode"].(string)
	attr.ObservedAt, _ = body["observedAt"].(string)
	attr.DatasetID, _ = body["datasetId"].(string)

	return attr
}

// stringField returns the first of the named members that holds a
// string value.
func stringField(obj map[string]any, names ...string) string {
	for _, n := range names {
		if s, ok := obj[n].(string); ok {
			return s
		}
	}
	return ""
}

// contextEntries normalizes "@context" into its string entries. A bare
// string becomes a one-element list; inline context objects are not
// referencable vocabularies and are skipped.
func contextEntries(v any) []string {
	switch ctx := v.(type) {
	case string:
		return []string{ctx}
	case []any:
		out := make([]string, 0, len(ctx))
		for _, e := range ctx {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
