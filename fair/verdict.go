// Package fair implements the FAIRness rule engine and report
// aggregation for NGSI-LD Data Model documents.
package fair

import (
	"github.com/waterverse/fairness/datamodel"
	"github.com/waterverse/fairness/geo"
)

// Dimension is one of the four FAIR principles a rule belongs to.
type Dimension string

const (
	Findable      Dimension = "findable"
	Accessible    Dimension = "accessible"
	Interoperable Dimension = "interoperable"
	Reusable      Dimension = "reusable"
)

// Status is the outcome of a single rule evaluation. A rule never
// raises on a failing document; failure is always expressed here.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	// StatusNotApplicable marks rules whose subject is absent from the
	// document, e.g. geolocation rules on a document without any
	// GeoProperty.
	StatusNotApplicable Status = "not_applicable"
	// StatusIndeterminate marks rules that faulted internally. The
	// fault is isolated to the verdict; the rest of the report is
	// still produced.
	StatusIndeterminate Status = "indeterminate"
)

// Verdict is the immutable result of one rule evaluation.
type Verdict struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Dimension   Dimension `json:"dimension"`
	Status      Status    `json:"status"`
	Explanation string    `json:"explanation"`
}

// Inputs carries everything a rule may consume: the parsed document and
// the findings of the structural and geolocation stages. Rules read
// from it and never write.
type Inputs struct {
	Doc       *datamodel.Document
	Structure []datamodel.Finding
	Geo       []geo.Finding
}
