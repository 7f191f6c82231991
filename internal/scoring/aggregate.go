package scoring

// Breakdown is the result of aggregating contributions per axis.
//
// Sums holds the raw signed sums, Norms the normalization denominators derived
// from the question catalog, and Normalized the canonical [-1, 1] positions.
type Breakdown struct {
	Sums       map[Axis]float64
	Norms      map[Axis]float64
	Normalized map[Axis]float64
}

// Aggregate sums contributions per axis and normalizes them against the
// maximum possible magnitude of the catalog.
//
// The denominator for an axis is the sum of |weight| * maxStrength over all
// catalog questions on that axis, floored at 1 to avoid division by zero.
// Normalized values are always within [-1, 1]; axes with no answered
// questions yield 0.
func Aggregate(contributions []Contribution, questions []Question) Breakdown {
	breakdown := Breakdown{
		Sums:       make(map[Axis]float64, len(Axes())),
		Norms:      make(map[Axis]float64, len(Axes())),
		Normalized: make(map[Axis]float64, len(Axes())),
	}

	for _, axis := range Axes() {
		breakdown.Sums[axis] = 0
		breakdown.Norms[axis] = 0
		breakdown.Normalized[axis] = 0
	}

	for _, question := range questions {
		if _, known := breakdown.Norms[question.Axis]; !known {
			continue
		}
		weight := question.Weight
		if weight < 0 {
			weight = -weight
		}
		breakdown.Norms[question.Axis] += weight * maxStrength
	}

	for _, contribution := range contributions {
		if _, known := breakdown.Sums[contribution.Axis]; !known {
			continue
		}
		breakdown.Sums[contribution.Axis] += contribution.SignedValue
	}

	for _, axis := range Axes() {
		norm := breakdown.Norms[axis]
		if norm < 1 {
			norm = 1
			breakdown.Norms[axis] = norm
		}
		breakdown.Normalized[axis] = clamp(breakdown.Sums[axis]/norm, -1, 1)
	}

	return breakdown
}

// Score is a convenience that runs the full pipeline from answers to a
// normalized breakdown.
func Score(answers Answers, questions []Question, opts Options) Breakdown {
	return Aggregate(ComputeContributions(answers, questions, opts), questions)
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
