package fair

// SchemeVersion identifies the scoring scheme and rule set. The rule
// set, weights and thresholds are a versioned contract: any change to
// them bumps this version.
const SchemeVersion = "1.0.0"

// Config holds the scoring scheme parameters. It is passed explicitly
// to NewEngine and Aggregate; there is no process-wide state.
type Config struct {
	// Weights weighs each dimension in the overall score. A dimension
	// missing from the map weighs 1.
	Weights map[Dimension]float64

	// CompliantThreshold is the minimum overall score for the
	// "compliant" level, PartialThreshold for "partially_compliant".
	CompliantThreshold float64
	PartialThreshold   float64

	// VocabularyPrefixes lists the @context URL prefixes accepted as
	// standard vocabularies by the Interoperable vocabulary rule.
	VocabularyPrefixes []string
}

// DefaultConfig returns the documented defaults: equal dimension
// weights, compliant only when every applicable rule passes, partially
// compliant from half the weighted score upwards, and the FIWARE
// smart-data-models program as the accepted vocabulary source.
func DefaultConfig() Config {
	return Config{
		Weights: map[Dimension]float64{
			Findable:      1,
			Accessible:    1,
			Interoperable: 1,
			Reusable:      1,
		},
		CompliantThreshold: 1.0,
		PartialThreshold:   0.5,
		VocabularyPrefixes: []string{
			"https://raw.githubusercontent.com/smart-data-models/",
		},
	}
}

func (c Config) weight(d Dimension) float64 {
	w, ok := c.Weights[d]
	if !ok {
		return 1
	}
	return w
}
