package scoring

import (
	"fmt"
	"math"
	"sort"
)

// PartyPosition locates a party on the party scale [-10, 10] along the two
// axes the party catalogs publish positions for.
type PartyPosition struct {
	Economic float64 `json:"economic" db:"economic"`
	Social   float64 `json:"social" db:"social"`
}

// Party is static reference data describing one political party.
type Party struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Country  string        `json:"country"`
	Position PartyPosition `json:"position"`
}

// MatchResult ranks one party against the user's position.
type MatchResult struct {
	Party        Party
	MatchPercent float64
	Reasons      []string
}

// axisSpan is the full width of the party scale.
const axisSpan = 2 * PartyScaleMax

// Distance cutoffs on the party scale for the per-axis proximity reasons.
const (
	closeCutoff   = 2.5
	partialCutoff = 5.0
)

// ComputeMatches scores the user's answers, projects the result onto the
// party scale and ranks every party of the given country by Euclidean
// distance, closest first.
//
// An empty answer set yields a neutral zero position and matches are computed
// against that. Parties at equal distance keep their catalog order.
func ComputeMatches(
	country string,
	answers Answers,
	questions []Question,
	parties []Party,
	opts Options,
) []MatchResult {
	breakdown := Score(answers, questions, opts)
	user := PartyPosition{
		Economic: ToPartyScale(breakdown.Normalized[AxisEconomic]),
		Social:   ToPartyScale(breakdown.Normalized[AxisSocial]),
	}
	return MatchPosition(country, user, parties)
}

// MatchPosition ranks parties against an already-computed user position on
// the party scale.
func MatchPosition(country string, user PartyPosition, parties []Party) []MatchResult {
	maxDistance := math.Sqrt2 * axisSpan
	results := make([]MatchResult, 0, len(parties))
	for _, party := range parties {
		if party.Country != country {
			continue
		}
		economicDistance := math.Abs(user.Economic - party.Position.Economic)
		socialDistance := math.Abs(user.Social - party.Position.Social)
		distance := math.Hypot(economicDistance, socialDistance)
		matchPercent := clamp(100*(1-distance/maxDistance), 0, 100)
		results = append(results, MatchResult{
			Party:        party,
			MatchPercent: matchPercent,
			Reasons:      matchReasons(economicDistance, socialDistance, matchPercent),
		})
	}
	// Stable sort keeps the catalog order for equidistant parties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})
	return results
}

// matchReasons attaches human-readable explanations: one proximity
// classification per compared axis plus an overall-alignment narrative.
func matchReasons(economicDistance, socialDistance, matchPercent float64) []string {
	reasons := []string{
		axisReason("economic", economicDistance),
		axisReason("social", socialDistance),
	}
	switch {
	case matchPercent > 80:
		reasons = append(reasons, "You agree with this party on most themes")
	case matchPercent > 60:
		reasons = append(reasons, "You share substantial common ground with this party")
	case matchPercent > 40:
		reasons = append(reasons, "You agree with this party on some themes")
	default:
		reasons = append(reasons, "Your views differ from this party on most themes")
	}
	return reasons
}

func axisReason(axis string, distance float64) string {
	switch {
	case distance < closeCutoff:
		return fmt.Sprintf("Your %s views are close to this party's", axis)
	case distance < partialCutoff:
		return fmt.Sprintf("Your %s views partly match this party's", axis)
	default:
		return fmt.Sprintf("Your %s views diverge from this party's", axis)
	}
}
