package scoring

import (
	"math"
	"time"
)

// DefaultHalfLifeDays is the half-life of a hot topic's influence.
const DefaultHalfLifeDays = 45.0

const hoursPerDay = 24.0

// Contribution is the signed, weighted, optionally decayed effect of a single
// answered question on its axis. Contributions are ephemeral and recomputed on
// every scoring pass.
type Contribution struct {
	QuestionID  string
	Axis        Axis
	SignedValue float64
	DecayFactor float64
}

// Options tunes a scoring pass. The zero value selects time.Now and
// DefaultHalfLifeDays.
type Options struct {
	// Now anchors the age calculation for hot-topic decay.
	Now time.Time
	// HalfLifeDays overrides DefaultHalfLifeDays when positive.
	HalfLifeDays float64
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) halfLifeDays() float64 {
	if o.HalfLifeDays > 0 {
		return o.HalfLifeDays
	}
	return DefaultHalfLifeDays
}

// ComputeContributions transforms each answered question into a contribution.
//
// Questions without an answer are skipped, as are answers for unknown
// questions. There are no error conditions: malformed answer values map to
// strength 0 via the strength table.
func ComputeContributions(answers Answers, questions []Question, opts Options) []Contribution {
	contributions := make([]Contribution, 0, len(answers))
	for _, question := range questions {
		value, answered := answers[question.ID]
		if !answered {
			continue
		}
		base := float64(question.Direction) * question.Weight * float64(strength(value))
		decay := decayFactor(question, opts)
		contributions = append(contributions, Contribution{
			QuestionID:  question.ID,
			Axis:        question.Axis,
			SignedValue: base * decay,
			DecayFactor: decay,
		})
	}
	return contributions
}

// decayFactor computes exp(-ln2/halfLifeDays * ageDays) for hot questions with
// a start time. Everything else keeps its full weight.
func decayFactor(question Question, opts Options) float64 {
	if question.Type != QuestionTypeHot || question.StartAt == nil {
		return 1
	}
	ageDays := opts.now().Sub(*question.StartAt).Hours() / hoursPerDay
	if ageDays <= 0 {
		return 1
	}
	return math.Exp(-math.Ln2 / opts.halfLifeDays() * ageDays)
}
