package jedna

import "testing"

// property 8: parse(format(c)) == c, for every figure/color combination.
func TestNotationRoundTrip(t *testing.T) {
	var cards []Card
	for color := ColorRed; color <= ColorYellow; color++ {
		for figure := Figure(0); figure <= Figure(9); figure++ {
			cards = append(cards, NewCard(color, figure))
		}
		cards = append(cards, NewCard(color, FigureSkip))
		cards = append(cards, NewCard(color, FigureReverse))
		cards = append(cards, NewCard(color, FigureDrawTwo))
	}
	cards = append(cards, NewWildCard(FigureWild))
	cards = append(cards, NewWildCard(FigureWildDrawFour))
	for _, color := range []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow} {
		cards = append(cards, NewWildCard(FigureWild).WithChosenColor(color))
		cards = append(cards, NewWildCard(FigureWildDrawFour).WithChosenColor(color))
	}

	for _, c := range cards {
		notation := c.Format()
		parsed, err := ParseCard(notation)
		if err != nil {
			t.Fatalf("ParseCard(%q) failed: %v", notation, err)
		}
		if parsed != c {
			t.Fatalf("round trip mismatch for %q: got %+v, want %+v", notation, parsed, c)
		}
	}
}

func TestParseCardHistoricalBareWild(t *testing.T) {
	c, err := ParseCard("WW")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Figure != FigureWild || c.Color != ColorWild {
		t.Fatalf("expected bare wild, got %+v", c)
	}
}

func TestParseCardRejectsUnknown(t *testing.T) {
	for _, bad := range []string{"", "z5", "r99", "wz", "wd4z", "wd4rg"} {
		if _, err := ParseCard(bad); err == nil {
			t.Fatalf("expected error parsing %q", bad)
		}
	}
}

func TestMatchesRule(t *testing.T) {
	top := NewCard(ColorGreen, 7)

	cases := []struct {
		name      string
		candidate Card
		want      bool
	}{
		{"same color different figure", NewCard(ColorGreen, 4), true},
		{"same figure different color", NewCard(ColorRed, 7), true},
		{"neither matches", NewCard(ColorRed, 4), false},
		{"wild always matches", NewWildCard(FigureWild), true},
		{"wild draw four always matches", NewWildCard(FigureWildDrawFour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(top, tc.candidate); got != tc.want {
				t.Fatalf("Matches(%s, %s) = %v, want %v", top.Format(), tc.candidate.Format(), got, tc.want)
			}
		})
	}
}

func TestMatchesUsesEffectiveColorOfChosenWild(t *testing.T) {
	top := NewWildCard(FigureWild).WithChosenColor(ColorBlue)
	if !Matches(top, NewCard(ColorBlue, 3)) {
		t.Fatalf("expected blue card to match a wild top with chosen color blue")
	}
	if Matches(top, NewCard(ColorRed, 3)) {
		t.Fatalf("expected red card not to match a wild top with chosen color blue")
	}
}

func TestCardValue(t *testing.T) {
	cases := []struct {
		card Card
		want int
	}{
		{NewCard(ColorRed, 5), 5},
		{NewCard(ColorRed, 0), 0},
		{NewCard(ColorGreen, FigureSkip), 20},
		{NewCard(ColorGreen, FigureReverse), 20},
		{NewCard(ColorGreen, FigureDrawTwo), 20},
		{NewWildCard(FigureWild), 50},
		{NewWildCard(FigureWildDrawFour), 50},
	}
	for _, tc := range cases {
		if got := tc.card.Value(); got != tc.want {
			t.Fatalf("%s.Value() = %d, want %d", tc.card.Format(), got, tc.want)
		}
	}
}
