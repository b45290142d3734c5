package datamodel

// AttributeKind is the NGSI-LD attribute category. The set is closed:
// every attribute in a Data Model is a Property, a Relationship or a
// GeoProperty, and anything else is KindUnknown.
type AttributeKind int

const (
	KindUnknown AttributeKind = iota
	KindProperty
	KindRelationship
	KindGeoProperty
)

// ParseKind maps a declared "type" field to an AttributeKind.
// The second return value is false when the declaration is not a
// recognized NGSI-LD category.
func ParseKind(s string) (AttributeKind, bool) {
	switch s {
	case "Property":
		return KindProperty, true
	case "Relationship":
		return KindRelationship, true
	case "GeoProperty":
		return KindGeoProperty, true
	default:
		return KindUnknown, false
	}
}

func (k AttributeKind) String() string {
	switch k {
	case KindProperty:
		return "Property"
	case KindRelationship:
		return "Relationship"
	case KindGeoProperty:
		return "GeoProperty"
	default:
		return "Unknown"
	}
}

// Attribute is one node of the parsed Document tree.
//
// Value holds the attribute payload: the "value" field for a Property
// or GeoProperty, the "object" field for a Relationship, or the raw
// JSON value when the attribute is not a recognized NGSI-LD attribute
// object (KindUnknown).
type Attribute struct {
	Name string
	Kind AttributeKind
	// RawKind is the "type" field as declared in the input, kept for
	// diagnostics when Kind is KindUnknown.
	RawKind    string
	Value      any
	UnitCode   string
	ObservedAt string
	DatasetID  string
}

// Document is the normalized in-memory form of one NGSI-LD Data Model.
// It is built once by Parse and treated as read-only afterwards; the
// evaluation pipeline never mutates it.
type Document struct {
	// ID is the entity identifier ("id" or "@id"), empty when absent.
	ID string
	// Type is the entity type ("type" or "@type"), empty when absent.
	Type string
	// Context holds the string entries of "@context" in input order.
	// Inline context objects are dropped from this list.
	Context []string
	// Attributes lists all non-reserved top-level members in
	// lexicographic name order, so downstream output is deterministic.
	Attributes []Attribute
	// Raw is the decoded top-level object. Read-only; rule predicates
	// evaluate against it.
	Raw map[string]any
}

// Attribute returns the attribute with the given name.
func (d *Document) Attribute(name string) (Attribute, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// GeoProperties returns the attributes typed as GeoProperty.
func (d *Document) GeoProperties() []Attribute {
	var out []Attribute
	for _, a := range d.Attributes {
		if a.Kind == KindGeoProperty {
			out = append(out, a)
		}
	}
	return out
}

// HasField reports whether the document declares a top-level member
// with the given name, regardless of its shape.
func (d *Document) HasField(name string) bool {
	_, ok := d.Raw[name]
	return ok
}
