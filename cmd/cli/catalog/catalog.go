// Package catalog exposes the embedded reference data on the command line.
package catalog

import (
	"encoding/json"
	"fmt"
	quizcatalog "github.com/myrjola/kompassi/internal/catalog"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/spf13/cobra"
	"os"
)

var Group = &cobra.Group{
	ID:    "catalog",
	Title: "Catalog operations",
}

func init() {
	Score.Flags().String("country", "fi", "country code for party matches")
}

var Lint = &cobra.Command{
	Use:     "lint",
	GroupID: "catalog",
	Short:   "Validate the catalogs",
	Long:    "Validates the embedded question and party catalogs and reports every problem found",
	Run: func(_ *cobra.Command, _ []string) {
		cat, err := quizcatalog.Load()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Catalog error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%d questions and %d countries validated\n", len(cat.Questions()), len(cat.Countries()))
	},
}

var Score = &cobra.Command{
	Use:     "score [answers.json]",
	GroupID: "catalog",
	Short:   "Score an answer file",
	Long:    "Computes axis scores and party matches from a JSON object of question id to answer value",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
			os.Exit(1)
		}

		var answers scoring.Answers
		if err = json.Unmarshal(data, &answers); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
			os.Exit(1)
		}

		cat, err := quizcatalog.Load()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Catalog error: %v\n", err)
			os.Exit(1)
		}

		country, err := cmd.Flags().GetString("country")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid country flag: %v\n", err)
			os.Exit(1)
		}

		breakdown := scoring.Score(answers, cat.Questions(), scoring.Options{})
		for _, axis := range scoring.Axes() {
			fmt.Printf("%-12s %+6.1f\n", string(axis), scoring.ToDisplayScale(breakdown.Normalized[axis]))
		}

		matches := scoring.ComputeMatches(country, answers, cat.Questions(), cat.Parties(country), scoring.Options{})
		for _, match := range matches {
			fmt.Printf("%3.0f%% %s\n", match.MatchPercent, match.Party.Name)
		}
	},
}
