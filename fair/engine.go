package fair

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// ruleFunc evaluates one rule against the inputs and reports the
// outcome. Rules are independent and side-effect free.
type ruleFunc func(Inputs) (Status, string)

type rule struct {
	id        string
	name      string
	dimension Dimension
	eval      ruleFunc
}

// Engine applies the fixed FAIR rule set to a document. The rule set is
// assembled once at construction: simple metadata-presence predicates
// are CEL expressions compiled here, the remaining rules are named Go
// functions. An Engine is immutable after construction and safe for
// concurrent use.
type Engine struct {
	rules []rule
}

// NewEngine builds the engine for the given scoring configuration.
// It fails when a CEL rule expression does not compile; a valid build
// cannot fail at evaluation time.
func NewEngine(cfg Config) (*Engine, error) {
	env, err := cel.NewEnv(cel.Variable("doc", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	e := &Engine{}

	add := func(id, name string, dim Dimension, eval ruleFunc) {
		e.rules = append(e.rules, rule{id: id, name: name, dimension: dim, eval: eval})
	}
	addCEL := func(id, name string, dim Dimension, expr, passMsg, failMsg string) error {
		eval, err := compileCELRule(env, expr, passMsg, failMsg)
		if err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
		add(id, name, dim, eval)
		return nil
	}

	// Registry order is fixed; verdict output follows it.
	add("F1-identifier", "Identifier presence", Findable, ruleIdentifier)
	if err := addCEL("F2-discoverable-metadata", "Discoverable metadata", Findable,
		`(has(doc.name) || has(doc.title)) && has(doc.description)`,
		"document carries a name/title and a description",
		"document lacks a name/title or a description"); err != nil {
		return nil, err
	}
	add("A1-context-declared", "Context declaration", Accessible, ruleContextDeclared)
	add("A2-context-resolvable", "Context resolvability", Accessible, ruleContextResolvable)
	add("I1-standard-vocabulary", "Standard vocabulary", Interoperable,
		makeVocabularyRule(cfg.VocabularyPrefixes))
	add("I2-attribute-typing", "Attribute typing", Interoperable, ruleAttributeTyping)
	add("I3-geo-encoding", "Geolocation encoding", Interoperable, ruleGeoEncoding)
	if err := addCEL("R1-license", "License metadata", Reusable,
		`has(doc.license) || has(doc.dataProvenance)`,
		"document carries license or provenance metadata",
		"document carries neither license nor provenance metadata"); err != nil {
		return nil, err
	}
	if err := addCEL("R2-versioning", "Versioning metadata", Reusable,
		`has(doc.version) || has(doc.dataModelVersion) || has(doc.dateModified) || has(doc.dateCreated)`,
		"document carries versioning metadata",
		"document carries no version or modification date"); err != nil {
		return nil, err
	}

	return e, nil
}

// Evaluate runs every rule against the inputs and returns the verdicts
// in registry order. A faulting rule yields an indeterminate verdict
// and never aborts the remaining rules.
func (e *Engine) Evaluate(in Inputs) []Verdict {
	verdicts := make([]Verdict, 0, len(e.rules))
	for _, r := range e.rules {
		verdicts = append(verdicts, runRule(r, in))
	}
	return verdicts
}

func runRule(r rule, in Inputs) (v Verdict) {
	v = Verdict{RuleID: r.id, RuleName: r.name, Dimension: r.dimension}

	defer func() {
		if rec := recover(); rec != nil {
			v.Status = StatusIndeterminate
			v.Explanation = fmt.Sprintf("rule fault: %v", rec)
		}
	}()

	v.Status, v.Explanation = r.eval(in)
	return v
}

// compileCELRule compiles a boolean CEL expression over the raw
// document into a ruleFunc. The cost limit keeps a pathological
// document from running away, mirroring the limit applied to rule
// programs elsewhere.
func compileCELRule(env *cel.Env, expr, passMsg, failMsg string) (ruleFunc, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	prog, err := env.Program(ast, cel.CostLimit(1000000))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}

	return func(in Inputs) (Status, string) {
		out, _, err := prog.Eval(map[string]any{"doc": in.Doc.Raw})
		if err != nil {
			return StatusIndeterminate, fmt.Sprintf("rule evaluation error: %v", err)
		}
		if matched, ok := out.Value().(bool); ok && matched {
			return StatusPass, passMsg
		}
		return StatusFail, failMsg
	}, nil
}
