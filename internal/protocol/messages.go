// Package protocol defines the duel wire messages and their JSON codec.
package protocol

import (
	"fmt"

	"github.com/abhisek/mathblat/internal/problemgen"
)

// Type is the message discriminator carried in the "type" field.
type Type string

const (
	TypeProblem Type = "problem"
	TypeAnswer  Type = "answer"
	TypeHello   Type = "hello"
)

// Message is implemented by every wire message.
type Message interface {
	MessageType() Type
}

// ProblemMessage is sent by the problem-issuing peer each round. Only
// Problem and Options are required; the rest are optional hints.
type ProblemMessage struct {
	Type     Type     `json:"type"`
	Problem  string   `json:"problem"`
	Options  []int    `json:"options"`
	Answer   *int     `json:"answer,omitempty"`
	Points   int      `json:"points,omitempty"`
	Category string   `json:"category,omitempty"`
	Tier     string   `json:"tier,omitempty"`
	Steps    []string `json:"steps,omitempty"`
}

func (ProblemMessage) MessageType() Type { return TypeProblem }

// AnswerMessage is sent by a peer right after it resolves its own round.
// Score is the sender's cumulative score and is informational only.
type AnswerMessage struct {
	Type    Type `json:"type"`
	Correct bool `json:"correct"`
	Score   int  `json:"score"`
}

func (AnswerMessage) MessageType() Type { return TypeAnswer }

// HelloMessage is exchanged once when a connection is attached.
type HelloMessage struct {
	Type    Type   `json:"type"`
	Version string `json:"version"`
	Name    string `json:"name,omitempty"`
}

func (HelloMessage) MessageType() Type { return TypeHello }

// NewProblem builds the wire form of a generated problem.
func NewProblem(p problemgen.Problem) ProblemMessage {
	answer := p.Answer
	return ProblemMessage{
		Type:     TypeProblem,
		Problem:  p.Text,
		Options:  append([]int(nil), p.Options...),
		Answer:   &answer,
		Points:   p.Points,
		Category: p.Category.String(),
		Tier:     p.Tier.String(),
		Steps:    append([]string(nil), p.Steps...),
	}
}

// NewAnswer builds an answer message.
func NewAnswer(correct bool, score int) AnswerMessage {
	return AnswerMessage{Type: TypeAnswer, Correct: correct, Score: score}
}

// NewHello builds a hello message for the current protocol version.
func NewHello(name string) HelloMessage {
	return HelloMessage{Type: TypeHello, Version: Version, Name: name}
}

// ToProblem converts a received problem into a playable one. The text and
// options are used verbatim. When the sender omitted the answer it is
// recomputed from the text. Points are always credited at localTier.
func (m ProblemMessage) ToProblem(localTier problemgen.Tier) (problemgen.Problem, error) {
	p := problemgen.Problem{
		Text:       m.Problem,
		Expression: problemgen.ExpressionFromText(m.Problem),
		Category:   problemgen.CategoryArithmetic,
		Tier:       localTier,
		Options:    append([]int(nil), m.Options...),
		Points:     localTier.Points(),
		Steps:      append([]string(nil), m.Steps...),
	}
	if m.Category != "" {
		cat, err := problemgen.ParseCategory(m.Category)
		if err != nil {
			return problemgen.Problem{}, fmt.Errorf("problem message: %w", err)
		}
		p.Category = cat
	}

	if m.Answer != nil {
		p.Answer = *m.Answer
	} else {
		n, err := problemgen.Evaluate(m.Problem)
		if err != nil {
			return problemgen.Problem{}, fmt.Errorf("problem message: no answer and %w", err)
		}
		p.Answer = n
	}

	if verr := (&problemgen.AnswerFormatValidator{}).Validate(&p); verr != nil {
		return problemgen.Problem{}, fmt.Errorf("problem message: %w", verr)
	}
	return p, nil
}
