package main

import (
	"github.com/waterverse/fairness/datamodel"
	"github.com/waterverse/fairness/fair"
	"github.com/waterverse/fairness/geo"
)

// API response models with Swagger annotations

// EvaluateResponse is the envelope returned by the evaluation
// endpoints. The embedded report is deterministic for a given document;
// only the envelope metadata (request id, timing) varies per call.
type EvaluateResponse struct {
	RequestID         string              `json:"requestId" example:"123e4567-e89b-12d3-a456-426614174000"`
	EvaluationTime    string              `json:"evaluationTime" example:"1.2ms"`
	Report            fair.Report         `json:"report"`
	StructureFindings []datamodel.Finding `json:"structureFindings"`
	GeoFindings       []geo.Finding       `json:"geoFindings"`
} // @name EvaluateResponse

// ErrorBody carries the machine-readable error code and a
// human-readable message.
type ErrorBody struct {
	Code    string `json:"code" example:"PARSE_ERROR"`
	Message string `json:"message" example:"invalid JSON document"`
} // @name ErrorBody

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
} // @name ErrorResponse

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	SchemeVersion string `json:"schemeVersion" example:"1.0.0"`
} // @name HealthResponse
