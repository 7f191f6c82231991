// Package catalog loads the embedded question and party reference data.
//
// Both catalogs are static: they are compiled into the binary, validated once
// at startup and never mutated at runtime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"log/slog"
	"sort"
	"time"
)

//go:embed questions.json
var questionsJSON []byte

//go:embed parties.json
var partiesJSON []byte

// Catalog holds the validated question and party reference data.
type Catalog struct {
	questions        []scoring.Question
	questionsByID    map[string]scoring.Question
	partiesByCountry map[string][]scoring.Party
}

// Load parses and validates the embedded catalogs.
func Load() (*Catalog, error) {
	var questions []scoring.Question
	if err := json.Unmarshal(questionsJSON, &questions); err != nil {
		return nil, errors.Wrap(err, "parse question catalog")
	}

	var parties []scoring.Party
	if err := json.Unmarshal(partiesJSON, &parties); err != nil {
		return nil, errors.Wrap(err, "parse party catalog")
	}

	return New(questions, parties)
}

// New validates the given reference data and builds the lookup structures.
func New(questions []scoring.Question, parties []scoring.Party) (*Catalog, error) {
	c := Catalog{
		questions:        questions,
		questionsByID:    make(map[string]scoring.Question, len(questions)),
		partiesByCountry: make(map[string][]scoring.Party),
	}

	var errorList []error
	for _, question := range questions {
		if err := validateQuestion(question); err != nil {
			errorList = append(errorList, err)
			continue
		}
		if _, duplicate := c.questionsByID[question.ID]; duplicate {
			errorList = append(errorList, errors.New("duplicate question id", slog.String("id", question.ID)))
			continue
		}
		c.questionsByID[question.ID] = question
	}

	for _, party := range parties {
		if err := validateParty(party); err != nil {
			errorList = append(errorList, err)
			continue
		}
		c.partiesByCountry[party.Country] = append(c.partiesByCountry[party.Country], party)
	}

	if len(errorList) != 0 {
		return nil, errors.Join(errorList...)
	}
	return &c, nil
}

func validateQuestion(question scoring.Question) error {
	attrs := slog.String("id", question.ID)
	if question.ID == "" {
		return errors.New("question without id")
	}
	switch question.Axis {
	case scoring.AxisEconomic, scoring.AxisSocial, scoring.AxisGlobal, scoring.AxisProgress:
	default:
		return errors.New("unknown axis", attrs, slog.String("axis", string(question.Axis)))
	}
	switch question.Type {
	case scoring.QuestionTypeScale, scoring.QuestionTypeYesNo:
	case scoring.QuestionTypeHot:
		if question.StartAt == nil {
			return errors.New("hot question without startAt", attrs)
		}
	default:
		return errors.New("unknown question type", attrs, slog.String("type", string(question.Type)))
	}
	if question.Weight < 0 {
		return errors.New("negative weight", attrs, slog.Float64("weight", question.Weight))
	}
	if question.Direction != -1 && question.Direction != 1 {
		return errors.New("direction must be -1 or 1", attrs, slog.Int("direction", question.Direction))
	}
	return nil
}

func validateParty(party scoring.Party) error {
	attrs := slog.String("id", party.ID)
	if party.ID == "" {
		return errors.New("party without id")
	}
	if party.Country == "" {
		return errors.New("party without country", attrs)
	}
	position := party.Position
	if position.Economic < -scoring.PartyScaleMax || position.Economic > scoring.PartyScaleMax ||
		position.Social < -scoring.PartyScaleMax || position.Social > scoring.PartyScaleMax {
		return errors.New("party position outside scale", attrs,
			slog.Float64("economic", position.Economic), slog.Float64("social", position.Social))
	}
	return nil
}

// Questions returns the full question catalog in its original order.
func (c *Catalog) Questions() []scoring.Question {
	questions := make([]scoring.Question, len(c.questions))
	copy(questions, c.questions)
	return questions
}

// Question looks up a single question by id.
func (c *Catalog) Question(id string) (scoring.Question, bool) {
	question, ok := c.questionsByID[id]
	return question, ok
}

// Parties returns the parties of the given country in catalog order.
func (c *Catalog) Parties(country string) []scoring.Party {
	parties := make([]scoring.Party, len(c.partiesByCountry[country]))
	copy(parties, c.partiesByCountry[country])
	return parties
}

// Countries lists the countries with party data, sorted for stable output.
func (c *Catalog) Countries() []string {
	countries := make([]string, 0, len(c.partiesByCountry))
	for country := range c.partiesByCountry {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// HotTopics returns the hot questions active at the given time, i.e. started
// and not yet past their end time.
func (c *Catalog) HotTopics(now time.Time) []scoring.Question {
	var hot []scoring.Question
	for _, question := range c.questions {
		if question.Type != scoring.QuestionTypeHot {
			continue
		}
		if question.StartAt != nil && now.Before(*question.StartAt) {
			continue
		}
		if question.EndAt != nil && !now.Before(*question.EndAt) {
			continue
		}
		hot = append(hot, question)
	}
	return hot
}
