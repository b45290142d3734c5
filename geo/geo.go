// Package geo validates the GeoJSON geometry carried by NGSI-LD
// GeoProperty attributes: geometry type, coordinate shape, coordinate
// ranges and polygon ring closure.
package geo

import (
	"fmt"

	"github.com/waterverse/fairness/datamodel"
)

// Geometry types accepted in a GeoProperty value.
const (
	GeometryPoint      = "Point"
	GeometryLineString = "LineString"
	GeometryPolygon    = "Polygon"
)

// Finding is the validation outcome for one GeoProperty attribute.
type Finding struct {
	Attribute string `json:"attribute"`
	Geometry  string `json:"geometry,omitempty"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
}

// Validate inspects every GeoProperty attribute of the document and
// returns one finding per attribute. A document without GeoProperty
// attributes yields an empty list; that is not an error, the
// geolocation rules downstream go not-applicable.
func Validate(doc *datamodel.Document) []Finding {
	geoAttrs := doc.GeoProperties()
	if len(geoAttrs) == 0 {
		return nil
	}

	findings := make([]Finding, 0, len(geoAttrs))
	for _, attr := range geoAttrs {
		findings = append(findings, checkGeometry(attr.Name, attr.Value))
	}
	return findings
}

func checkGeometry(name string, v any) Finding {
	geom, ok := v.(map[string]any)
	if !ok {
		return invalid(name, "", "GeoProperty value is not a GeoJSON geometry object")
	}

	gtype, hasType := geom["type"].(string)
	coords, hasCoords := geom["coordinates"]
	if !hasType || !hasCoords {
		return invalid(name, gtype, "missing 'type' or 'coordinates' in geometry")
	}

	switch gtype {
	case GeometryPoint:
		return checkPoint(name, coords)
	case GeometryLineString:
		return checkLineString(name, coords)
	case GeometryPolygon:
		return checkPolygon(name, coords)
	default:
		return invalid(name, gtype,
			fmt.Sprintf("unsupported geometry type %q (allowed: Point, LineString, Polygon)", gtype))
	}
}

func checkPoint(name string, coords any) Finding {
	lon, lat, ok := position(coords)
	if !ok {
		return invalid(name, GeometryPoint, "Point coordinates must be a single [longitude, latitude] pair")
	}
	if !inRange(lon, lat) {
		return invalid(name, GeometryPoint, rangeReason(lon, lat))
	}
	return valid(name, GeometryPoint)
}

func checkLineString(name string, coords any) Finding {
	positions, ok := coords.([]any)
	if !ok || len(positions) < 2 {
		return invalid(name, GeometryLineString, "LineString must have at least two [longitude, latitude] positions")
	}
	for i, p := range positions {
		lon, lat, ok := position(p)
		if !ok {
			return invalid(name, GeometryLineString,
				fmt.Sprintf("position %d is not a [longitude, latitude] pair", i))
		}
		if !inRange(lon, lat) {
			return invalid(name, GeometryLineString,
				fmt.Sprintf("position %d: %s", i, rangeReason(lon, lat)))
		}
	}
	return valid(name, GeometryLineString)
}

func checkPolygon(name string, coords any) Finding {
	rings, ok := coords.([]any)
	if !ok || len(rings) == 0 {
		return invalid(name, GeometryPolygon, "Polygon must have at least one linear ring")
	}

	for r, rawRing := range rings {
		ring, ok := rawRing.([]any)
		if !ok || len(ring) < 4 {
			return invalid(name, GeometryPolygon,
				fmt.Sprintf("ring %d must have at least four positions", r))
		}

		for i, p := range ring {
			lon, lat, ok := position(p)
			if !ok {
				return invalid(name, GeometryPolygon,
					fmt.Sprintf("ring %d position %d is not a [longitude, latitude] pair", r, i))
			}
			if !inRange(lon, lat) {
				return invalid(name, GeometryPolygon,
					fmt.Sprintf("ring %d position %d: %s", r, i, rangeReason(lon, lat)))
			}
		}

		firstLon, firstLat, _ := position(ring[0])
		lastLon, lastLat, _ := position(ring[len(ring)-1])
		if firstLon != lastLon || firstLat != lastLat {
			return invalid(name, GeometryPolygon,
				fmt.Sprintf("ring %d is not closed: first and last position must be equal", r))
		}
	}

	return valid(name, GeometryPolygon)
}

// position extracts a [longitude, latitude] pair. Both elements must be
// numeric; anything else is rejected.
func position(v any) (lon, lat float64, ok bool) {
	pair, isList := v.([]any)
	if !isList || len(pair) != 2 {
		return 0, 0, false
	}
	lon, lonOK := pair[0].(float64)
	lat, latOK := pair[1].(float64)
	if !lonOK || !latOK {
		return 0, 0, false
	}
	return lon, lat, true
}

func inRange(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

func rangeReason(lon, lat float64) string {
	return fmt.Sprintf("coordinates [%v, %v] out of range: longitude must be within [-180, 180] and latitude within [-90, 90]", lon, lat)
}

func valid(name, geometry string) Finding {
	return Finding{Attribute: name, Geometry: geometry, Valid: true}
}

func invalid(name, geometry, reason string) Finding {
	return Finding{Attribute: name, Geometry: geometry, Valid: false, Reason: reason}
}
