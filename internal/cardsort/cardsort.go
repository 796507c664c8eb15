// Package cardsort implements the advantages/disadvantages card-sorting quiz.
package cardsort

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Simplici0/breakeven/internal/apperr"
)

// Kind is the bin a card belongs in.
type Kind string

const (
	KindAdvantage    Kind = "adv"
	KindDisadvantage Kind = "dis"
)

// ParseKind accepts bin names and the keyboard shortcuts "a" and "d".
// An empty value means the card has not been placed.
func ParseKind(raw string) (Kind, bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "":
		return "", false, nil
	case string(KindAdvantage):
		return KindAdvantage, true, nil
	case string(KindDisadvantage):
		return KindDisadvantage, true, nil
	}
	if k, ok := BinForKey(v); ok {
		return k, true, nil
	}
	return "", false, apperr.Input(fmt.Sprintf("unknown bin %q", raw))
}

// BinForKey maps the keyboard shortcuts to bins.
func BinForKey(key string) (Kind, bool) {
	switch strings.ToLower(key) {
	case "a":
		return KindAdvantage, true
	case "d":
		return KindDisadvantage, true
	}
	return "", false
}

// Card is one statement to sort.
type Card struct {
	ID   int
	Text string
	Kind Kind
}

var advantages = []string{
	"Simple to understand and explain to non-specialists",
	"Helps set sales targets and prices that cover costs",
	"Supports what-if planning when costs or prices change",
	"Helps identify required output before profit begins",
	"Quick to produce with basic numbers",
	"Useful for comparing products with different cost structures",
}

var disadvantages = []string{
	"Assumes selling price and variable cost stay constant",
	"Assumes everything made is sold",
	"Harder to use with multiple products sharing costs",
	"Ignores external factors like competition",
	"Only a guide, not a guarantee of profit",
	"Less accurate if costs are semi-variable or step-based",
}

// DefaultCards returns the standard deck: advantages first, then disadvantages, with
// IDs starting at 1.
func DefaultCards() []Card {
	cards := make([]Card, 0, len(advantages)+len(disadvantages))
	for _, t := range advantages {
		cards = append(cards, Card{ID: len(cards) + 1, Text: t, Kind: KindAdvantage})
	}
	for _, t := range disadvantages {
		cards = append(cards, Card{ID: len(cards) + 1, Text: t, Kind: KindDisadvantage})
	}
	return cards
}

// Shuffle returns a Fisher-Yates shuffled copy of cards.
func Shuffle(cards []Card, r *rand.Rand) []Card {
	out := append([]Card(nil), cards...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Order returns cards rearranged to follow ids. Unknown ids are an input error.
func Order(cards []Card, ids []int) ([]Card, error) {
	byID := make(map[int]Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, apperr.Input(fmt.Sprintf("unknown card %d", id))
		}
		out = append(out, c)
	}
	return out, nil
}

// Placements records which bin each card id was dropped in.
type Placements map[int]Kind

// Score counts correctly placed cards.
type Score struct {
	Correct int
	Placed  int
}

// Message is the feedback shown after checking.
func (s Score) Message() string {
	if s.Placed == 0 {
		return "Place some cards first."
	}
	return fmt.Sprintf("You placed %d of %d correctly.", s.Correct, s.Placed)
}

// Check scores placements against cards. Cards left in the holder do not count.
func Check(cards []Card, placements Placements) Score {
	var s Score
	for _, c := range cards {
		bin, ok := placements[c.ID]
		if !ok || bin == "" {
			continue
		}
		s.Placed++
		if bin == c.Kind {
			s.Correct++
		}
	}
	return s
}

// RevealMessage is shown once the model answers are revealed.
const RevealMessage = "Model answers revealed."

// Reveal places every card in its correct bin.
func Reveal(cards []Card) Placements {
	p := make(Placements, len(cards))
	for _, c := range cards {
		p[c.ID] = c.Kind
	}
	return p
}
