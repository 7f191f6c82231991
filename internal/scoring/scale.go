package scoring

// The application has accumulated three numeric scales over time: the party
// catalog uses [-10, 10], results are displayed on [-100, 100], and persisted
// snapshots carry a legacy score derived from a centered-at-3 formula. The
// canonical internal scale is [-1, 1] and every other scale is reached through
// the explicit conversions below. Nothing outside this file converts scales.

const (
	// PartyScaleMax bounds the party catalog scale [-10, 10].
	PartyScaleMax = 10.0
	// DisplayScaleMax bounds the display scale [-100, 100].
	DisplayScaleMax = 100.0
	// legacyScaleMax bounds the pre-normalization legacy score [-5, 5].
	legacyScaleMax = 5.0
	// legacySnapshotFactor scales the clamped legacy score for persistence.
	legacySnapshotFactor = 5.0
)

// ToPartyScale converts a canonical [-1, 1] value to the party scale.
func ToPartyScale(normalized float64) float64 {
	return clamp(normalized, -1, 1) * PartyScaleMax
}

// FromPartyScale converts a party-scale value to the canonical scale.
func FromPartyScale(v float64) float64 {
	return clamp(v/PartyScaleMax, -1, 1)
}

// ToDisplayScale converts a canonical [-1, 1] value to the display scale.
func ToDisplayScale(normalized float64) float64 {
	return clamp(normalized, -1, 1) * DisplayScaleMax
}

// FromDisplayScale converts a display-scale value to the canonical scale.
func FromDisplayScale(v float64) float64 {
	return clamp(v/DisplayScaleMax, -1, 1)
}

// LegacyAxisSums computes the historical per-axis score: answers centered
// around 3 and multiplied by weight and direction, summed per axis and clamped
// to [-5, 5]. It skips normalization by the catalog denominator, which is why
// it disagrees in scale with Aggregate. Kept only for the persisted-snapshot
// recompute contract; new call sites should use Aggregate.
func LegacyAxisSums(answers Answers, questions []Question) map[Axis]float64 {
	sums := make(map[Axis]float64, len(Axes()))
	for _, axis := range Axes() {
		sums[axis] = 0
	}
	for _, question := range questions {
		value, answered := answers[question.ID]
		if !answered {
			continue
		}
		if _, known := sums[question.Axis]; !known {
			continue
		}
		centered := float64(value) - 3
		sums[question.Axis] += centered * question.Weight * float64(question.Direction)
	}
	for axis, sum := range sums {
		sums[axis] = clamp(sum, -legacyScaleMax, legacyScaleMax)
	}
	return sums
}

// ToLegacySnapshot converts a clamped legacy axis sum to the value stored in
// snapshot rows, i.e. scaled by the constant snapshot factor to [-25, 25].
func ToLegacySnapshot(legacySum float64) float64 {
	return clamp(legacySum, -legacyScaleMax, legacyScaleMax) * legacySnapshotFactor
}

// FromLegacySnapshot converts a stored legacy snapshot value back to the
// canonical [-1, 1] scale.
func FromLegacySnapshot(v float64) float64 {
	return clamp(v/(legacyScaleMax*legacySnapshotFactor), -1, 1)
}
