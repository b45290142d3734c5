package datamodel

import "testing"

func mustParse(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return doc
}

func findingCodes(findings []Finding) map[string]int {
	codes := map[string]int{}
	for _, f := range findings {
		codes[f.Code]++
	}
	return codes
}

func TestCheckStructureCleanDocument(t *testing.T) {
	doc := mustParse(t, sampleDoc)

	findings := CheckStructure(doc, []byte(sampleDoc))
	if len(findings) != 0 {
		t.Errorf("expected no findings for clean document, got %v", findings)
	}
}

func TestCheckStructureMissingIdentifierAndType(t *testing.T) {
	raw := `{
		"@context": "https://example.org/ctx.jsonld",
		"name": {"type": "Property", "value": "x"},
		"description": {"type": "Property", "value": "y"}
	}`
	doc := mustParse(t, raw)

	codes := findingCodes(CheckStructure(doc, []byte(raw)))
	if codes[FindingMissingIdentifier] != 1 {
		t.Errorf("expected one %s finding, got %d", FindingMissingIdentifier, codes[FindingMissingIdentifier])
	}
	if codes[FindingMissingEntityType] != 1 {
		t.Errorf("expected one %s finding, got %d", FindingMissingEntityType, codes[FindingMissingEntityType])
	}
}

func TestCheckStructureEmptyContext(t *testing.T) {
	raw := `{"@context": [], "id": "urn:x:1", "type": "X",
		"name": {"type": "Property", "value": "x"},
		"description": {"type": "Property", "value": "y"}}`
	doc := mustParse(t, raw)

	codes := findingCodes(CheckStructure(doc, []byte(raw)))
	if codes[FindingEmptyContext] != 1 {
		t.Errorf("expected one %s finding, got %v", FindingEmptyContext, codes)
	}
}

func TestCheckStructureAttributeIssues(t *testing.T) {
	testCases := []struct {
		name     string
		attr     string
		wantCode string
	}{
		{"unrecognized type", `{"type": "Gadget", "value": 1}`, FindingUnknownKind},
		{"not an attribute object", `42`, FindingUnknownKind},
		{"property without value", `{"type": "Property"}`, FindingMissingValue},
		{"geoproperty without value", `{"type": "GeoProperty"}`, FindingMissingValue},
		{"relationship without object", `{"type": "Relationship"}`, FindingMissingObject},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{"@context": "https://example.org/ctx.jsonld", "id": "urn:x:1", "type": "X",
				"name": {"type": "Property", "value": "x"},
				"description": {"type": "Property", "value": "y"},
				"subject": ` + tc.attr + `}`
			doc := mustParse(t, raw)

			codes := findingCodes(CheckStructure(doc, []byte(raw)))
			if codes[tc.wantCode] != 1 {
				t.Errorf("expected one %s finding, got %v", tc.wantCode, codes)
			}
		})
	}
}

func TestCheckStructureDuplicateAttribute(t *testing.T) {
	raw := `{
		"@context": "https://example.org/ctx.jsonld",
		"id": "urn:x:1",
		"type": "X",
		"name": {"type": "Property", "value": "x"},
		"description": {"type": "Property", "value": "y"},
		"temperature": {"type": "Property", "value": 20},
		"temperature": {"type": "Property", "value": 21}
	}`
	doc := mustParse(t, raw)

	var dup *Finding
	for _, f := range CheckStructure(doc, []byte(raw)) {
		if f.Code == FindingDuplicateKey {
			dup = &f
			break
		}
	}
	if dup == nil {
		t.Fatal("expected a duplicate_key finding")
	}
	if dup.Path != "/temperature" {
		t.Errorf("duplicate finding path = %q, want /temperature", dup.Path)
	}
	if dup.Severity != SeverityError {
		t.Errorf("duplicate finding severity = %q, want error", dup.Severity)
	}
}

func TestCheckStructureDiscoverabilityWarnings(t *testing.T) {
	raw := `{"@context": "https://example.org/ctx.jsonld", "id": "urn:x:1", "type": "X"}`
	doc := mustParse(t, raw)

	findings := CheckStructure(doc, []byte(raw))
	codes := findingCodes(findings)
	if codes[FindingMissingName] != 1 || codes[FindingMissingDescription] != 1 {
		t.Fatalf("expected name and description warnings, got %v", codes)
	}

	for _, f := range findings {
		if (f.Code == FindingMissingName || f.Code == FindingMissingDescription) && f.Severity != SeverityWarning {
			t.Errorf("finding %s severity = %q, want warning", f.Code, f.Severity)
		}
	}
}

func TestCheckStructureTitleSatisfiesName(t *testing.T) {
	raw := `{"@context": "https://example.org/ctx.jsonld", "id": "urn:x:1", "type": "X",
		"title": {"type": "Property", "value": "x"},
		"description": {"type": "Property", "value": "y"}}`
	doc := mustParse(t, raw)

	codes := findingCodes(CheckStructure(doc, []byte(raw)))
	if codes[FindingMissingName] != 0 {
		t.Errorf("title should satisfy the name check, got %v", codes)
	}
}

func TestDuplicateTopLevelKeysIgnoresNested(t *testing.T) {
	raw := `{
		"@context": "https://example.org/ctx.jsonld",
		"id": "urn:x:1",
		"a": {"type": "Property", "value": {"x": 1, "x": 2}},
		"b": {"type": "Property", "value": [{"x": 1}, {"x": 2}]}
	}`

	if dups := duplicateTopLevelKeys([]byte(raw)); len(dups) != 0 {
		t.Errorf("nested duplicate keys must not be reported, got %v", dups)
	}
}
