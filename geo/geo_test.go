package geo

import (
	"strings"
	"testing"

	"github.com/waterverse/fairness/datamodel"
)

// docWithGeometry builds a document whose single GeoProperty carries
// the given geometry JSON.
func docWithGeometry(t *testing.T, geometry string) *datamodel.Document {
	t.Helper()
	raw := `{
		"@context": "https://example.org/ctx.jsonld",
		"id": "urn:ngsi-ld:X:1",
		"type": "X",
		"location": {"type": "GeoProperty", "value": ` + geometry + `}
	}`
	doc, err := datamodel.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return doc
}

func TestValidateGeometries(t *testing.T) {
	testCases := []struct {
		name       string
		geometry   string
		wantValid  bool
		wantReason string
	}{
		{
			name:      "valid point",
			geometry:  `{"type": "Point", "coordinates": [10.0, 52.0]}`,
			wantValid: true,
		},
		{
			name:       "point longitude out of range",
			geometry:   `{"type": "Point", "coordinates": [200, 45]}`,
			wantValid:  false,
			wantReason: "longitude",
		},
		{
			name:       "point latitude out of range",
			geometry:   `{"type": "Point", "coordinates": [10, 95]}`,
			wantValid:  false,
			wantReason: "latitude",
		},
		{
			name:       "point with single element",
			geometry:   `{"type": "Point", "coordinates": [10]}`,
			wantValid:  false,
			wantReason: "pair",
		},
		{
			name:       "point with non-numeric coordinates",
			geometry:   `{"type": "Point", "coordinates": ["10", "52"]}`,
			wantValid:  false,
			wantReason: "pair",
		},
		{
			name:      "valid linestring",
			geometry:  `{"type": "LineString", "coordinates": [[10, 52], [11, 53]]}`,
			wantValid: true,
		},
		{
			name:       "linestring with one position",
			geometry:   `{"type": "LineString", "coordinates": [[10, 52]]}`,
			wantValid:  false,
			wantReason: "at least two",
		},
		{
			name:       "linestring position out of range",
			geometry:   `{"type": "LineString", "coordinates": [[10, 52], [190, 53]]}`,
			wantValid:  false,
			wantReason: "out of range",
		},
		{
			name:      "valid polygon",
			geometry:  `{"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [1, 1], [0, 0]]]}`,
			wantValid: true,
		},
		{
			name:       "polygon ring not closed",
			geometry:   `{"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [1, 1], [1, 0]]]}`,
			wantValid:  false,
			wantReason: "not closed",
		},
		{
			name:       "polygon ring too short",
			geometry:   `{"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [0, 0]]]}`,
			wantValid:  false,
			wantReason: "at least four",
		},
		{
			name:       "polygon latitude out of range",
			geometry:   `{"type": "Polygon", "coordinates": [[[0, 0], [0, 95], [1, 1], [0, 0]]]}`,
			wantValid:  false,
			wantReason: "latitude",
		},
		{
			name:       "polygon without rings",
			geometry:   `{"type": "Polygon", "coordinates": []}`,
			wantValid:  false,
			wantReason: "linear ring",
		},
		{
			name:       "unsupported geometry type",
			geometry:   `{"type": "MultiPoint", "coordinates": [[10, 52]]}`,
			wantValid:  false,
			wantReason: "unsupported geometry type",
		},
		{
			name:       "missing coordinates",
			geometry:   `{"type": "Point"}`,
			wantValid:  false,
			wantReason: "missing",
		},
		{
			name:       "value not a geometry object",
			geometry:   `"52.0, 10.0"`,
			wantValid:  false,
			wantReason: "not a GeoJSON geometry",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docWithGeometry(t, tc.geometry)

			findings := Validate(doc)
			if len(findings) != 1 {
				t.Fatalf("len(findings) = %d, want 1", len(findings))
			}

			f := findings[0]
			if f.Attribute != "location" {
				t.Errorf("Attribute = %q, want location", f.Attribute)
			}
			if f.Valid != tc.wantValid {
				t.Errorf("Valid = %v, want %v (reason: %s)", f.Valid, tc.wantValid, f.Reason)
			}
			if tc.wantReason != "" && !strings.Contains(f.Reason, tc.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", f.Reason, tc.wantReason)
			}
		})
	}
}

func TestValidateNoGeoProperties(t *testing.T) {
	raw := `{
		"@context": "https://example.org/ctx.jsonld",
		"id": "urn:ngsi-ld:X:1",
		"type": "X",
		"temperature": {"type": "Property", "value": 21.5}
	}`
	doc, err := datamodel.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if findings := Validate(doc); len(findings) != 0 {
		t.Errorf("expected no findings for a document without GeoProperty, got %v", findings)
	}
}

func TestValidateMultipleGeoProperties(t *testing.T) {
	raw := `{
		"@context": "https://example.org/ctx.jsonld",
		"id": "urn:ngsi-ld:X:1",
		"type": "X",
		"location": {"type": "GeoProperty", "value": {"type": "Point", "coordinates": [10.0, 52.0]}},
		"serviceArea": {"type": "GeoProperty", "value": {"type": "Point", "coordinates": [200, 45]}}
	}`
	doc, err := datamodel.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	findings := Validate(doc)
	if len(findings) != 2 {
		t.Fatalf("len(findings) = %d, want 2", len(findings))
	}

	byAttr := map[string]Finding{}
	for _, f := range findings {
		byAttr[f.Attribute] = f
	}
	if !byAttr["location"].Valid {
		t.Errorf("location should be valid: %s", byAttr["location"].Reason)
	}
	if byAttr["serviceArea"].Valid {
		t.Error("serviceArea should be invalid")
	}
}
