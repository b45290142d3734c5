package fair

import "math"

// Level is the overall compliance tier of a report.
type Level string

const (
	LevelCompliant          Level = "compliant"
	LevelPartiallyCompliant Level = "partially_compliant"
	LevelNotCompliant       Level = "not_compliant"
)

// DimensionScore summarizes the verdicts of one FAIR dimension.
type DimensionScore struct {
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	NotApplicable int     `json:"notApplicable"`
	Indeterminate int     `json:"indeterminate"`
	Score         float64 `json:"score"`
}

// Report is the aggregate evaluation result returned to the caller.
// It is a pure function of the verdict set: the same document always
// produces a byte-identical report.
type Report struct {
	SchemeVersion string                       `json:"schemeVersion"`
	Level         Level                        `json:"level"`
	Score         float64                      `json:"score"`
	Dimensions    map[Dimension]DimensionScore `json:"dimensions"`
	Verdicts      []Verdict                    `json:"verdicts"`
}

// Aggregate computes per-dimension sub-scores and the overall
// compliance level from the ordered verdict set.
//
// A dimension's score is passed / (passed + failed + indeterminate):
// indeterminate verdicts count against the score, not-applicable
// verdicts drop out entirely. Dimensions with no applicable rule score
// 1 and are excluded from the weighted overall mean. The overall score
// maps to a level via the configured thresholds.
func Aggregate(cfg Config, verdicts []Verdict) Report {
	dims := map[Dimension]DimensionScore{
		Findable:      {},
		Accessible:    {},
		Interoperable: {},
		Reusable:      {},
	}

	for _, v := range verdicts {
		ds := dims[v.Dimension]
		switch v.Status {
		case StatusPass:
			ds.Passed++
		case StatusFail:
			ds.Failed++
		case StatusNotApplicable:
			ds.NotApplicable++
		case StatusIndeterminate:
			ds.Indeterminate++
		}
		dims[v.Dimension] = ds
	}

	var weightedSum, weightTotal float64
	for dim, ds := range dims {
		applicable := ds.Passed + ds.Failed + ds.Indeterminate
		if applicable == 0 {
			ds.Score = 1
			dims[dim] = ds
			continue
		}
		ds.Score = round4(float64(ds.Passed) / float64(applicable))
		dims[dim] = ds

		w := cfg.weight(dim)
		weightedSum += w * ds.Score
		weightTotal += w
	}

	score := 1.0
	if weightTotal > 0 {
		score = round4(weightedSum / weightTotal)
	}

	return Report{
		SchemeVersion: SchemeVersion,
		Level:         level(cfg, score),
		Score:         score,
		Dimensions:    dims,
		Verdicts:      verdicts,
	}
}

func level(cfg Config, score float64) Level {
	switch {
	case score >= cfg.CompliantThreshold:
		return LevelCompliant
	case score >= cfg.PartialThreshold:
		return LevelPartiallyCompliant
	default:
		return LevelNotCompliant
	}
}

// round4 keeps scores stable and readable in JSON output.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
