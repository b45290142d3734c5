package datamodel

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Severity grades a structural finding. Error-severity findings fail
// the Interoperable attribute-typing rule; warnings are advisory.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding codes.
const (
	FindingMissingIdentifier  = "missing_identifier"
	FindingMissingEntityType  = "missing_entity_type"
	FindingEmptyContext       = "empty_context"
	FindingUnknownKind        = "unknown_attribute_kind"
	FindingMissingValue       = "missing_value"
	FindingMissingObject      = "missing_relationship_object"
	FindingDuplicateKey       = "duplicate_key"
	FindingMissingName        = "missing_name"
	FindingMissingDescription = "missing_description"
)

// Finding is one structural issue, addressed by a JSON-pointer-style
// path. Findings are data: they are aggregated and attached to the
// report, never raised as errors.
type Finding struct {
	Path     string   `json:"path"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// CheckStructure validates a parsed Document against NGSI-LD structural
// conventions and returns the aggregated findings. raw is the original
// input; it is rescanned token by token to catch duplicate top-level
// attribute names, which disappear during map decoding.
func CheckStructure(doc *Document, raw []byte) []Finding {
	findings := []Finding{}

	if doc.ID == "" {
		findings = append(findings, Finding{
			Path:     "/id",
			Code:     FindingMissingIdentifier,
			Severity: SeverityError,
			Message:  "entity has no id attribute",
		})
	}

	if doc.Type == "" {
		findings = append(findings, Finding{
			Path:     "/type",
			Code:     FindingMissingEntityType,
			Severity: SeverityError,
			Message:  "entity has no type attribute",
		})
	}

	if len(doc.Context) == 0 {
		findings = append(findings, Finding{
			Path:     "/@context",
			Code:     FindingEmptyContext,
			Severity: SeverityError,
			Message:  "@context holds no referencable context entries",
		})
	}

	for _, attr := range doc.Attributes {
		findings = append(findings, checkAttribute(attr)...)
	}

	for _, name := range duplicateTopLevelKeys(raw) {
		findings = append(findings, Finding{
			Path:     "/" + name,
			Code:     FindingDuplicateKey,
			Severity: SeverityError,
			Message:  fmt.Sprintf("attribute %q is declared more than once", name),
		})
	}

	if !doc.HasField("name") && !doc.HasField("title") {
		findings = append(findings, Finding{
			Path:     "/name",
			Code:     FindingMissingName,
			Severity: SeverityWarning,
			Message:  "entity declares neither name nor title",
		})
	}

	if !doc.HasField("description") {
		findings = append(findings, Finding{
			Path:     "/description",
			Code:     FindingMissingDescription,
			Severity: SeverityWarning,
			Message:  "entity declares no description",
		})
	}

	return findings
}

func checkAttribute(attr Attribute) []Finding {
	path := "/" + attr.Name

	switch attr.Kind {
	case KindUnknown:
		msg := fmt.Sprintf("attribute declares unrecognized type %q (expected Property, Relationship or GeoProperty)", attr.RawKind)
		if attr.RawKind == "" {
			msg = "attribute is not an NGSI-LD attribute object"
		}
		return []Finding{{
			Path:     path,
			Code:     FindingUnknownKind,
			Severity: SeverityError,
			Message:  msg,
		}}
	case KindProperty, KindGeoProperty:
		if attr.Value == nil {
			return []Finding{{
				Path:     path + "/value",
				Code:     FindingMissingValue,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s attribute has no value field", attr.Kind),
			}}
		}
	case KindRelationship:
		if attr.Value == nil {
			return []Finding{{
				Path:     path + "/object",
				Code:     FindingMissingObject,
				Severity: SeverityError,
				Message:  "Relationship attribute has no object field",
			}}
		}
	}

	return nil
}

// duplicateTopLevelKeys reports top-level member names that occur more
// than once in the raw input. Nested objects are skipped by tracking
// delimiter depth.
func duplicateTopLevelKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	seen := map[string]int{}
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}
		if seen[key] == 1 {
			order = append(order, key)
		}
		seen[key]++

		if err := skipValue(dec); err != nil {
			return nil
		}
	}

	return order
}

// skipValue consumes one JSON value from the decoder, descending
// through composite values until their delimiters balance.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
