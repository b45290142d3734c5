package main

import "net/http"

// handleSwaggerJSON serves the OpenAPI document consumed by the
// Swagger UI mounted under /swagger/.
func handleSwaggerJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(swaggerJSON))
}

const swaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "Waterverse FAIRness Evaluator",
    "description": "API for evaluating an NGSI-LD Data Model document against WATERVERSE FAIR guidelines.",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/api/v1/evaluate": {
      "post": {
        "summary": "Evaluate a Data Model document",
        "description": "The request body is the NGSI-LD Data Model document (JSON-LD) to evaluate.",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [
          {
            "in": "body",
            "name": "body",
            "required": true,
            "description": "NGSI-LD Data Model document",
            "schema": {"type": "object"}
          }
        ],
        "responses": {
          "200": {"description": "Evaluation report with per-rule verdicts, sub-scores and overall level."},
          "400": {"description": "Input is not valid JSON (PARSE_ERROR) or lacks the Data Model envelope (SCHEMA_MISMATCH)."},
          "500": {"description": "Internal evaluation failure."}
        }
      }
    },
    "/api/v1/evaluate/file": {
      "post": {
        "summary": "Evaluate an uploaded Data Model file",
        "consumes": ["multipart/form-data"],
        "produces": ["application/json"],
        "parameters": [
          {
            "in": "formData",
            "name": "file",
            "type": "file",
            "required": true,
            "description": "The JSON file to evaluate."
          }
        ],
        "responses": {
          "200": {"description": "Evaluation report with per-rule verdicts, sub-scores and overall level."},
          "400": {"description": "Missing file, invalid JSON or missing Data Model envelope."},
          "500": {"description": "Internal evaluation failure."}
        }
      }
    },
    "/api/v1/health": {
      "get": {
        "summary": "Liveness check",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "Service is up; reports the active scoring scheme version."}
        }
      }
    }
  }
}`
