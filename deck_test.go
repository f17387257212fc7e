package jedna

import "testing"

func TestNewStandardDeckComposition(t *testing.T) {
	deck := NewStandardDeck()
	if deck.Len() != 108 {
		t.Fatalf("expected 108 cards, got %d", deck.Len())
	}

	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}

	for _, color := range []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow} {
		if got := counts[NewCard(color, Figure0)]; got != 1 {
			t.Fatalf("expected exactly one %s 0, got %d", color, got)
		}
		for _, figure := range []Figure{Figure1, Figure2, Figure3, Figure4, Figure5, Figure6, Figure7, Figure8, Figure9, FigureSkip, FigureReverse, FigureDrawTwo} {
			if got := counts[NewCard(color, figure)]; got != 2 {
				t.Fatalf("expected exactly two %s %s, got %d", color, figure, got)
			}
		}
	}

	if got := counts[NewWildCard(FigureWild)]; got != 4 {
		t.Fatalf("expected exactly four Wild, got %d", got)
	}
	if got := counts[NewWildCard(FigureWildDrawFour)]; got != 4 {
		t.Fatalf("expected exactly four WildDrawFour, got %d", got)
	}
}

func TestShufflePreservesComposition(t *testing.T) {
	deck := NewStandardDeck()
	before := make(map[Card]int)
	for _, c := range deck {
		before[c]++
	}

	deck.Shuffle()

	after := make(map[Card]int)
	for _, c := range deck {
		after[c]++
	}

	if len(before) != len(after) {
		t.Fatalf("shuffle changed the set of distinct cards")
	}
	for c, n := range before {
		if after[c] != n {
			t.Fatalf("shuffle changed count of %s: before %d, after %d", c.Format(), n, after[c])
		}
	}
}

func TestPushPopTop(t *testing.T) {
	var d Deck
	d = d.Push(NewCard(ColorRed, 3))
	d = d.Push(NewCard(ColorGreen, 4))

	top, ok := d.Top()
	if !ok || top != NewCard(ColorGreen, 4) {
		t.Fatalf("expected green 4 on top, got %+v, ok=%v", top, ok)
	}

	var popped Card
	d, popped, ok = d.PopTop()
	if !ok || popped != NewCard(ColorGreen, 4) {
		t.Fatalf("unexpected pop result: %+v, ok=%v", popped, ok)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 card remaining, got %d", d.Len())
	}
}

// Exercises the §4.2/§9 reshuffle-from-discard path, including that wild
// cards moved back lose their chosen color and the discard top is kept.
func TestReshuffleFromDiscardKeepsTopAndClearsWildColors(t *testing.T) {
	discard := Deck{
		NewWildCard(FigureWild).WithChosenColor(ColorBlue),
		NewCard(ColorRed, 5),
		NewCard(ColorGreen, 7), // top
	}

	newDraw, newDiscard := ReshuffleFromDiscard(nil, discard)

	if newDraw.Len() != 2 {
		t.Fatalf("expected 2 reclaimed cards in the new draw deck, got %d", newDraw.Len())
	}
	top, ok := newDiscard.Top()
	if !ok || top != NewCard(ColorGreen, 7) {
		t.Fatalf("expected discard top to remain green 7, got %+v", top)
	}
	if newDiscard.Len() != 1 {
		t.Fatalf("expected discard to retain only its top card, got %d cards", newDiscard.Len())
	}

	for _, c := range newDraw {
		if c.IsWild() && c.Color != ColorWild {
			t.Fatalf("expected reclaimed wild card to have its chosen color cleared, got %+v", c)
		}
	}
}

func TestReshuffleFromDiscardWithEmptyDiscardIsNoop(t *testing.T) {
	drawDeck := Deck{NewCard(ColorRed, 1)}
	newDraw, newDiscard := ReshuffleFromDiscard(drawDeck, nil)
	if newDraw.Len() != 1 || newDiscard.Len() != 0 {
		t.Fatalf("expected no-op on empty discard, got draw=%d discard=%d", newDraw.Len(), newDiscard.Len())
	}
}
