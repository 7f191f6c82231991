package scoring_test

import (
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func testParties() []scoring.Party {
	return []scoring.Party{
		{ID: "left", Name: "Left Alliance", Country: "fi",
			Position: scoring.PartyPosition{Economic: -6, Social: -4}},
		{ID: "centre", Name: "Centre Party", Country: "fi",
			Position: scoring.PartyPosition{Economic: 0, Social: 0}},
		{ID: "right", Name: "Coalition Party", Country: "fi",
			Position: scoring.PartyPosition{Economic: 6, Social: 2}},
		{ID: "abroad", Name: "Elsewhere Party", Country: "se",
			Position: scoring.PartyPosition{Economic: 0, Social: 0}},
	}
}

func TestMatchPositionExactMatch(t *testing.T) {
	user := scoring.PartyPosition{Economic: -6, Social: -4}
	results := scoring.MatchPosition("fi", user, testParties())
	require.NotEmpty(t, results)
	assert.Equal(t, "left", results[0].Party.ID)
	assert.InDelta(t, 100.0, results[0].MatchPercent, 1e-9)
}

func TestMatchPositionFiltersCountry(t *testing.T) {
	results := scoring.MatchPosition("fi", scoring.PartyPosition{}, testParties())
	require.Len(t, results, 3)
	for _, result := range results {
		assert.Equal(t, "fi", result.Party.Country)
	}
}

func TestMatchPositionTieBreak(t *testing.T) {
	parties := []scoring.Party{
		{ID: "first", Name: "First", Country: "fi", Position: scoring.PartyPosition{Economic: -3, Social: 0}},
		{ID: "second", Name: "Second", Country: "fi", Position: scoring.PartyPosition{Economic: 3, Social: 0}},
	}
	results := scoring.MatchPosition("fi", scoring.PartyPosition{}, parties)
	require.Len(t, results, 2)
	assert.InDelta(t, results[0].MatchPercent, results[1].MatchPercent, 1e-12)
	// Equidistant parties keep catalog order.
	assert.Equal(t, "first", results[0].Party.ID)
	assert.Equal(t, "second", results[1].Party.ID)
}

func TestMatchPositionSortedDescending(t *testing.T) {
	results := scoring.MatchPosition("fi", scoring.PartyPosition{Economic: -8, Social: -8}, testParties())
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MatchPercent, results[i].MatchPercent)
	}
}

func TestComputeMatchesEmptyAnswers(t *testing.T) {
	// No answers yields a neutral position, so the party at the origin wins.
	results := scoring.ComputeMatches("fi", scoring.Answers{}, testCatalog(), testParties(), scoring.Options{})
	require.NotEmpty(t, results)
	assert.Equal(t, "centre", results[0].Party.ID)
	assert.InDelta(t, 100.0, results[0].MatchPercent, 1e-9)
}

func TestMatchReasons(t *testing.T) {
	tests := []struct {
		name         string
		user         scoring.PartyPosition
		party        scoring.PartyPosition
		wantFragment []string
	}{
		{
			name:         "close on both axes",
			user:         scoring.PartyPosition{Economic: 1, Social: 1},
			party:        scoring.PartyPosition{Economic: 0, Social: 0},
			wantFragment: []string{"economic views are close", "social views are close", "most themes"},
		},
		{
			name:         "divergent",
			user:         scoring.PartyPosition{Economic: -10, Social: -10},
			party:        scoring.PartyPosition{Economic: 10, Social: 10},
			wantFragment: []string{"economic views diverge", "social views diverge", "differ from this party"},
		},
		{
			name:         "partial",
			user:         scoring.PartyPosition{Economic: 3, Social: 0},
			party:        scoring.PartyPosition{Economic: 0, Social: 0},
			wantFragment: []string{"economic views partly match", "social views are close"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parties := []scoring.Party{{ID: "p", Name: "P", Country: "fi", Position: tt.party}}
			results := scoring.MatchPosition("fi", tt.user, parties)
			require.Len(t, results, 1)
			reasons := results[0].Reasons
			require.NotEmpty(t, reasons)
			require.LessOrEqual(t, len(reasons), 4)
			joined := ""
			for _, reason := range reasons {
				joined += reason + "\n"
			}
			for _, fragment := range tt.wantFragment {
				assert.Contains(t, joined, fragment)
			}
		})
	}
}
