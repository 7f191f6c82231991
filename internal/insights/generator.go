package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/myrjola/kompassi/internal/catalog"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"math"
	"sort"
	"strings"
)

// Insights is the structured analysis rendered on the results page.
type Insights struct {
	Summary        string   `json:"summary"`
	Contradictions []string `json:"contradictions"`
	TopDrivers     []string `json:"topDrivers"`
}

// ErrDisabled signals that no API key was configured.
var ErrDisabled = errors.NewSentinel("insights disabled")

type completer interface {
	SyncCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error)
	StreamCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionStream, error)
}

// Generator produces insights for a scored answer set. Without a client it
// degrades to a canned analysis derived from the scores alone.
type Generator struct {
	completer completer
	catalog   *catalog.Catalog
	logger    *slog.Logger
}

func NewGenerator(client *Client, cat *catalog.Catalog, logger *slog.Logger) *Generator {
	g := &Generator{
		completer: nil,
		catalog:   cat,
		logger:    logger.With("source", "insights.Generator"),
	}
	if client != nil {
		g.completer = client
	}
	return g
}

// Generate builds insights for the given answers. API failures degrade to the
// canned analysis instead of erroring so the results page always renders.
func (g *Generator) Generate(ctx context.Context, answers scoring.Answers, breakdown scoring.Breakdown) Insights {
	if g.completer == nil {
		return g.fallback(answers, breakdown)
	}

	completion, err := g.completer.SyncCompletion(ctx, g.promptMessages(answers, breakdown))
	if err != nil {
		g.logger.LogAttrs(ctx, slog.LevelWarn, "insight completion failed, using canned analysis",
			errors.SlogError(err))
		return g.fallback(answers, breakdown)
	}
	if len(completion.Choices) == 0 {
		return g.fallback(answers, breakdown)
	}

	content := completion.Choices[0].Message.Content
	var insights Insights
	if err = json.Unmarshal([]byte(content), &insights); err != nil {
		// Model ignored the JSON instruction, use the prose as-is.
		return Insights{Summary: content, Contradictions: nil, TopDrivers: nil}
	}
	return insights
}

// Stream opens a token stream for the same prompt. Used by the live insight
// endpoint so the analysis renders as it is generated.
func (g *Generator) Stream(ctx context.Context, answers scoring.Answers, breakdown scoring.Breakdown) (*openai.ChatCompletionStream, error) {
	if g.completer == nil {
		return nil, ErrDisabled
	}
	stream, err := g.completer.StreamCompletion(ctx, g.promptMessages(answers, breakdown))
	if err != nil {
		return nil, errors.Wrap(err, "stream insight completion")
	}
	return stream, nil
}

const systemPrompt = `You analyse answers to a political orientation quiz.
The user message contains the answered questions with their Likert values
(1 strongly disagree to 5 strongly agree) and the final axis scores on a
-100 to 100 scale. Respond with JSON matching this shape:
{"summary": "...", "contradictions": ["..."], "topDrivers": ["..."]}
Keep the summary under three sentences. List at most three contradictions
and three top drivers. Do not mention the numeric values directly.`

type promptPayload struct {
	Answers []promptAnswer     `json:"answers"`
	Scores  map[string]float64 `json:"scores"`
}

type promptAnswer struct {
	Question string `json:"question"`
	Axis     string `json:"axis"`
	Value    int    `json:"value"`
}

func (g *Generator) promptMessages(answers scoring.Answers, breakdown scoring.Breakdown) []openai.ChatCompletionMessage {
	payload := promptPayload{
		Answers: make([]promptAnswer, 0, len(answers)),
		Scores:  make(map[string]float64, len(breakdown.Normalized)),
	}
	for _, question := range g.catalog.Questions() {
		value, ok := answers[question.ID]
		if !ok {
			continue
		}
		payload.Answers = append(payload.Answers, promptAnswer{
			Question: question.Text,
			Axis:     string(question.Axis),
			Value:    value,
		})
	}
	for axis, value := range breakdown.Normalized {
		payload.Scores[string(axis)] = scoring.ToDisplayScale(value)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		// Marshalling plain structs and maps cannot fail.
		panic(err)
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: string(encoded)},
	}
}

var axisDescriptions = map[scoring.Axis][2]string{
	scoring.AxisEconomic: {"state-led economics", "market-led economics"},
	scoring.AxisSocial:   {"liberal social values", "conservative social values"},
	scoring.AxisGlobal:   {"international cooperation", "national sovereignty"},
	scoring.AxisProgress: {"reform", "tradition"},
}

// fallback derives a deterministic analysis from the scores so the results
// page has content even without the API.
func (g *Generator) fallback(answers scoring.Answers, breakdown scoring.Breakdown) Insights {
	var (
		strongest scoring.Axis
		magnitude float64
	)
	for _, axis := range scoring.Axes() {
		if value := math.Abs(breakdown.Normalized[axis]); value >= magnitude {
			strongest = axis
			magnitude = value
		}
	}

	descriptions := axisDescriptions[strongest]
	description := descriptions[1]
	if breakdown.Normalized[strongest] < 0 {
		description = descriptions[0]
	}

	summary := "Your answers do not lean strongly in any direction."
	if magnitude >= 0.2 {
		summary = fmt.Sprintf("Your answers lean most clearly towards %s.", description)
	}

	return Insights{
		Summary:        summary,
		Contradictions: nil,
		TopDrivers:     g.topDrivers(answers),
	}
}

const maxTopDrivers = 3

// topDrivers names the questions that moved the scores the most.
func (g *Generator) topDrivers(answers scoring.Answers) []string {
	contributions := scoring.ComputeContributions(answers, g.catalog.Questions(), scoring.Options{})
	sort.SliceStable(contributions, func(i, j int) bool {
		return math.Abs(contributions[i].SignedValue*contributions[i].DecayFactor) >
			math.Abs(contributions[j].SignedValue*contributions[j].DecayFactor)
	})

	drivers := make([]string, 0, maxTopDrivers)
	for _, contribution := range contributions {
		if len(drivers) == maxTopDrivers {
			break
		}
		if contribution.SignedValue == 0 {
			continue
		}
		question, ok := g.catalog.Question(contribution.QuestionID)
		if !ok {
			continue
		}
		drivers = append(drivers, strings.TrimSuffix(question.Text, "."))
	}
	return drivers
}
