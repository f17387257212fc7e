package jedna

// Hand is the ordered multiset of cards held by a single player. It is
// represented with the same primitive as the draw and discard piles, per
// the teacher's convention of treating every card container as a Deck.
type Hand struct {
	cards Deck
}

// Cards returns the hand's cards in order. The caller receives a fresh
// slice so the hand's internal state cannot be aliased.
func (h Hand) Cards() Deck {
	return h.cards.Clone()
}

func (h Hand) Len() int {
	return h.cards.Len()
}

func (h Hand) IsEmpty() bool {
	return h.cards.IsEmpty()
}

// TotalValue is the sum of every held card's point value (§3).
func (h Hand) TotalValue() int {
	return h.cards.TotalValue()
}

// Contains reports whether the hand holds at least one copy of want.
func (h Hand) Contains(want Card) bool {
	return h.cards.IndexOf(want) >= 0
}

// CountEqual reports how many copies of want the hand holds, used by the
// double-play extension (§4.3).
func (h Hand) CountEqual(want Card) int {
	return h.cards.CountEqual(want)
}

func (h *Hand) add(c Card) {
	h.cards = h.cards.Push(c)
}

// remove deletes one copy of c from the hand. Returns false if the hand
// does not hold c.
func (h *Hand) remove(c Card) bool {
	i := h.cards.IndexOf(c)
	if i < 0 {
		return false
	}
	h.cards = h.cards.Remove(i)
	return true
}
