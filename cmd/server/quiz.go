package main

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"

	"github.com/Simplici0/breakeven/internal/cardsort"
)

type quizCard struct {
	cardsort.Card
	Bin cardsort.Kind
}

type quizViewData struct {
	baseViewData
	Deal     string
	DealID   string
	Cards    []quizCard
	Revealed bool
}

func (s *server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	cards, err := s.catalog.Cards(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	dl := newDeal(uuid.New(), cards)
	ordered, err := cardsort.Order(cards, dl.CardIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	s.renderTemplate(w, "quiz.html", s.quizView(dl, ordered, nil, ""))
}

func (s *server) handleQuizCheck(w http.ResponseWriter, r *http.Request) {
	dl, cards, ok := s.loadDeal(w, r)
	if !ok {
		return
	}

	placements := make(cardsort.Placements, len(cards))
	for _, c := range cards {
		kind, placed, err := cardsort.ParseKind(r.PostFormValue(cardField(c.ID)))
		if err != nil {
			writeError(w, err)
			return
		}
		if placed {
			placements[c.ID] = kind
		}
	}

	score := cardsort.Check(cards, placements)
	s.renderTemplate(w, "quiz.html", s.quizView(dl, cards, placements, score.Message()))
}

func (s *server) handleQuizReveal(w http.ResponseWriter, r *http.Request) {
	dl, cards, ok := s.loadDeal(w, r)
	if !ok {
		return
	}

	view := s.quizView(dl, cards, cardsort.Reveal(cards), cardsort.RevealMessage)
	view.Revealed = true
	s.renderTemplate(w, "quiz.html", view)
}

func (s *server) loadDeal(w http.ResponseWriter, r *http.Request) (deal, []cardsort.Card, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return deal{}, nil, false
	}

	dl, err := s.deals.verify(r.PostFormValue(dealFieldName))
	if err != nil {
		writeError(w, err)
		return deal{}, nil, false
	}

	all, err := s.catalog.Cards(r.Context())
	if err != nil {
		writeError(w, err)
		return deal{}, nil, false
	}
	cards, err := cardsort.Order(all, dl.CardIDs)
	if err != nil {
		writeError(w, err)
		return deal{}, nil, false
	}
	return dl, cards, true
}

func (s *server) quizView(dl deal, cards []cardsort.Card, placements cardsort.Placements, msg string) quizViewData {
	view := quizViewData{
		baseViewData: baseViewData{SuccessMessage: msg},
		Deal:         s.deals.sign(dl),
		DealID:       dl.ID.String(),
		Cards:        make([]quizCard, 0, len(cards)),
	}
	for _, c := range cards {
		view.Cards = append(view.Cards, quizCard{Card: c, Bin: placements[c.ID]})
	}
	return view
}

// newDeal shuffles cards with a generator seeded from id, so a deal id always
// maps to the same order.
func newDeal(id uuid.UUID, cards []cardsort.Card) deal {
	rng := rand.New(rand.NewPCG(binary.BigEndian.Uint64(id[:8]), binary.BigEndian.Uint64(id[8:])))
	shuffled := cardsort.Shuffle(cards, rng)

	dl := deal{ID: id, CardIDs: make([]int, 0, len(shuffled))}
	for _, c := range shuffled {
		dl.CardIDs = append(dl.CardIDs, c.ID)
	}
	return dl
}

func cardField(id int) string {
	return fmt.Sprintf("card-%d", id)
}
