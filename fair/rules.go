package fair

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/waterverse/fairness/datamodel"
)

// ruleIdentifier checks that the entity declares a non-empty,
// URI-shaped identifier.
func ruleIdentifier(in Inputs) (Status, string) {
	id := in.Doc.ID
	if id == "" {
		return StatusFail, "document has no id attribute"
	}
	if !strings.Contains(id, ":") {
		return StatusFail, fmt.Sprintf("identifier %q is not a URI or URN", id)
	}
	return StatusPass, fmt.Sprintf("identifier %q is present", id)
}

// ruleContextDeclared checks that @context carries at least one
// referencable entry.
func ruleContextDeclared(in Inputs) (Status, string) {
	if len(in.Doc.Context) == 0 {
		return StatusFail, "the @context attribute holds no referencable context entries"
	}
	return StatusPass, fmt.Sprintf("@context declares %d context reference(s)", len(in.Doc.Context))
}

// ruleContextResolvable checks that every context entry is an absolute
// https URL, so the vocabulary can actually be dereferenced.
func ruleContextResolvable(in Inputs) (Status, string) {
	if len(in.Doc.Context) == 0 {
		return StatusNotApplicable, "document declares no context entries"
	}
	for _, entry := range in.Doc.Context {
		u, err := url.Parse(entry)
		if err != nil || !u.IsAbs() {
			return StatusFail, fmt.Sprintf("context entry %q is not an absolute URL", entry)
		}
		if u.Scheme != "https" {
			return StatusFail, fmt.Sprintf("context entry %q is not served over https", entry)
		}
	}
	return StatusPass, "all context entries are resolvable https URLs"
}

// makeVocabularyRule builds the standard-vocabulary check over the
// configured accepted prefixes.
func makeVocabularyRule(prefixes []string) ruleFunc {
	return func(in Inputs) (Status, string) {
		for _, entry := range in.Doc.Context {
			for _, prefix := range prefixes {
				if strings.HasPrefix(entry, prefix) {
					return StatusPass, fmt.Sprintf("@context references the standard vocabulary %q", entry)
				}
			}
		}
		return StatusFail, "no @context entry references an accepted standard vocabulary"
	}
}

// attributeTypingCodes lists the structural finding codes that concern
// attribute typing conventions. Envelope findings such as a missing
// identifier are assessed by their own dimension's rules and never
// fail this one.
var attributeTypingCodes = map[string]bool{
	datamodel.FindingUnknownKind:   true,
	datamodel.FindingMissingValue:  true,
	datamodel.FindingMissingObject: true,
	datamodel.FindingDuplicateKey:  true,
}

// ruleAttributeTyping consumes the structural findings: any
// error-severity typing finding means the document does not follow
// NGSI-LD attribute typing conventions.
func ruleAttributeTyping(in Inputs) (Status, string) {
	var errs []datamodel.Finding
	for _, f := range in.Structure {
		if f.Severity == datamodel.SeverityError && attributeTypingCodes[f.Code] {
			errs = append(errs, f)
		}
	}
	if len(errs) > 0 {
		return StatusFail, fmt.Sprintf("%d structural error(s), first: %s at %s", len(errs), errs[0].Code, errs[0].Path)
	}
	return StatusPass, "all attributes follow NGSI-LD typing conventions"
}

// ruleGeoEncoding consumes the geolocation findings. A document without
// GeoProperty attributes is not penalized.
func ruleGeoEncoding(in Inputs) (Status, string) {
	if len(in.Geo) == 0 {
		return StatusNotApplicable, "document declares no GeoProperty attributes"
	}
	for _, f := range in.Geo {
		if !f.Valid {
			return StatusFail, fmt.Sprintf("GeoProperty %q is invalid: %s", f.Attribute, f.Reason)
		}
	}
	return StatusPass, fmt.Sprintf("all %d GeoProperty attribute(s) carry valid GeoJSON geometry", len(in.Geo))
}
