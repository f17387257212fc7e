package jedna

import (
	"math/rand"

	"golang.org/x/exp/slices"
)

// Deck is a face-down stack of cards. The end of the slice is the top.
// Modeled as a plain slice exactly as the teacher's Deck, since draw/discard
// piles and hands are all "ordered collection of cards" at heart.
type Deck []Card

func (d Deck) Len() int {
	return len(d)
}

func (d Deck) IsEmpty() bool {
	return len(d) == 0
}

// Clone returns an independent copy so callers never alias a container's
// backing array.
func (d Deck) Clone() Deck {
	clone := make(Deck, len(d))
	copy(clone, d)
	return clone
}

// Top returns the most recently pushed card without removing it.
func (d Deck) Top() (Card, bool) {
	if d.IsEmpty() {
		return Card{}, false
	}
	return d[len(d)-1], true
}

// Push appends cards to the top.
func (d Deck) Push(cards ...Card) Deck {
	return append(d, cards...)
}

// PopTop removes and returns the top card.
func (d Deck) PopTop() (Deck, Card, bool) {
	top, ok := d.Top()
	if !ok {
		return d, Card{}, false
	}
	return d[:len(d)-1], top, true
}

// IndexOf returns the index of the first card equal to want, or -1.
func (d Deck) IndexOf(want Card) int {
	return slices.IndexFunc(d, func(c Card) bool { return c == want })
}

// Remove deletes the card at index i, preserving the relative order of the
// rest (an ordered multiset, per §3).
func (d Deck) Remove(i int) Deck {
	return slices.Delete(d, i, i+1)
}

// CountEqual returns how many cards in the deck equal want.
func (d Deck) CountEqual(want Card) int {
	n := 0
	for _, c := range d {
		if c == want {
			n++
		}
	}
	return n
}

// TotalValue sums the point value of every card, per §3 / §4.7.
func (d Deck) TotalValue() int {
	total := 0
	for _, c := range d {
		total += c.Value()
	}
	return total
}

// NewStandardDeck builds the 108-card composition specified in §3: for each
// of the four colors, one 0 and two each of 1..9/DrawTwo/Skip/Reverse, plus
// four Wild and four WildDrawFour.
func NewStandardDeck() Deck {
	cards := make(Deck, 0, 108)

	colors := []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}
	nonZeroFigures := []Figure{
		Figure1, Figure2, Figure3, Figure4, Figure5, Figure6, Figure7, Figure8, Figure9,
		FigureDrawTwo, FigureSkip, FigureReverse,
	}

	for _, color := range colors {
		cards = append(cards, NewCard(color, Figure0))
		for _, figure := range nonZeroFigures {
			cards = append(cards, NewCard(color, figure), NewCard(color, figure))
		}
	}

	for i := 0; i < 4; i++ {
		cards = append(cards, NewWildCard(FigureWild), NewWildCard(FigureWildDrawFour))
	}

	return cards
}

// Shuffle permutes the deck in place using the Fisher-Yates scheme from the
// teacher's ShuffleIntRange, applied directly to the card slice.
func (d Deck) Shuffle() {
	for end := len(d); end > 1; end-- {
		j := rand.Intn(end)
		d[end-1], d[j] = d[j], d[end-1]
	}
}

// ReshuffleFromDiscard rebuilds the draw deck from the discard pile when
// the draw deck runs short, per §4.2 / §9 "Draw-on-empty-deck": every card
// but the top of discard moves back into the draw deck, wild cards lose
// their chosen color, and the result is shuffled and placed under whatever
// remains of the draw deck.
func ReshuffleFromDiscard(drawDeck, discard Deck) (newDrawDeck, newDiscard Deck) {
	top, hasTop := discard.Top()
	if !hasTop {
		return drawDeck, discard
	}

	reclaimed := make(Deck, 0, len(discard)-1)
	for _, c := range discard[:len(discard)-1] {
		reclaimed = append(reclaimed, c.ClearChosenColor())
	}
	reclaimed.Shuffle()

	// Reclaimed cards go underneath the remaining draw deck, i.e. at the
	// bottom of the stack (index 0), since Top() is the end of the slice.
	newDrawDeck = append(append(Deck{}, reclaimed...), drawDeck...)
	newDiscard = Deck{top}
	return newDrawDeck, newDiscard
}
