// Package lesson drives the chart questions asked next to the break-even chart.
package lesson

import (
	"strings"

	"github.com/Simplici0/breakeven/internal/apperr"
)

// Question is a prompt the learner answers on the chart.
type Question string

const (
	QuestionNone   Question = ""
	QuestionFixed  Question = "fixed"
	QuestionProfit Question = "profit"
	QuestionLoss   Question = "loss"
)

// Action is something the learner did on the chart.
type Action string

const (
	ActionAsk           Action = "ask"
	ActionSelectFixed   Action = "select-fixed"
	ActionShowRegions   Action = "show-regions"
	ActionMarkBreakEven Action = "mark-bep"
)

// ParseQuestion accepts the question names used in forms.
func ParseQuestion(raw string) (Question, error) {
	switch q := Question(strings.TrimSpace(raw)); q {
	case QuestionNone, QuestionFixed, QuestionProfit, QuestionLoss:
		return q, nil
	}
	return QuestionNone, apperr.Input("unknown question: " + raw)
}

// State is the active question plus the message shown to the learner.
type State struct {
	Active  Question
	Message string
}

// Apply returns the state after the learner performs action while q is active.
// Asking replaces the active question; a correct action clears it.
func Apply(q Question, action Action, asked Question) State {
	switch action {
	case ActionAsk:
		if asked == QuestionNone {
			return State{Active: q}
		}
		return State{Active: asked, Message: "Question active. Use the chart or toggle regions."}
	case ActionSelectFixed:
		if q == QuestionFixed {
			return correct("Fixed cost line selected.")
		}
	case ActionShowRegions:
		switch q {
		case QuestionProfit:
			return correct("Profit region is the green area to the right of BEP.")
		case QuestionLoss:
			return correct("Loss region is the red area to the left of BEP.")
		}
	case ActionMarkBreakEven:
		return State{Active: q, Message: "BEP shown on the chart."}
	}
	return State{Active: q}
}

func correct(msg string) State {
	return State{Message: "Correct. " + msg}
}
