// Package scoring maps survey answers to positions on ideological axes and
// ranks political parties by how close they are to those positions.
//
// Every function in this package is pure: identical inputs always produce
// identical outputs, no I/O and no hidden state. The canonical internal scale
// for axis positions is [-1, 1]. Conversions to other scales live in scale.go.
package scoring

import "time"

// Axis is one ideological dimension on which users and parties are scored.
type Axis string

const (
	AxisEconomic Axis = "economic"
	AxisSocial   Axis = "social"
	AxisGlobal   Axis = "global"
	AxisProgress Axis = "progress"
)

// Axes lists every axis in a fixed order.
func Axes() []Axis {
	return []Axis{AxisEconomic, AxisSocial, AxisGlobal, AxisProgress}
}

// QuestionType determines how a question is presented and scored.
type QuestionType string

const (
	// QuestionTypeScale is a five-point Likert statement.
	QuestionTypeScale QuestionType = "scale"
	// QuestionTypeYesNo is a binary question. Answers are encoded on the
	// Likert domain: AnswerNo for no, AnswerYes for yes.
	QuestionTypeYesNo QuestionType = "yesno"
	// QuestionTypeHot is a time-sensitive question whose influence decays
	// exponentially from StartAt.
	QuestionTypeHot QuestionType = "hot"
)

// Question is immutable reference data describing a single survey question.
type Question struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Axis      Axis         `json:"axis"`
	Type      QuestionType `json:"type"`
	Weight    float64      `json:"weight"`
	Direction int          `json:"direction"`
	StartAt   *time.Time   `json:"startAt,omitempty"`
	EndAt     *time.Time   `json:"endAt,omitempty"`
}

// Answers maps question id to the chosen value on the 1-5 Likert domain.
type Answers map[string]int

// Yes/no answers are coerced to the Likert domain at the form boundary so the
// scoring core only ever sees one encoding.
const (
	AnswerNo  = 1
	AnswerYes = 5
)

// maxStrength is the largest magnitude the strength table can produce.
const maxStrength = 2

// strength maps a raw 1-5 choice to a signed strength in {-2,-1,0,1,2}.
// Unrecognized values map to 0 so malformed answers never contribute.
func strength(value int) int {
	switch value {
	case 1:
		return -2
	case 2:
		return -1
	case 3:
		return 0
	case 4:
		return 1
	case 5:
		return 2
	default:
		return 0
	}
}
