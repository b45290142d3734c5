package datamodel

// Machine-readable error codes surfaced to API clients.
const (
	CodeParseError     = "PARSE_ERROR"
	CodeSchemaMismatch = "SCHEMA_MISMATCH"
)

// ParseError reports input that is not syntactically valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON document: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatchError reports syntactically valid JSON that lacks the
// minimal NGSI-LD Data Model envelope.
type SchemaMismatchError struct {
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return "not an NGSI-LD data model: " + e.Reason
}
