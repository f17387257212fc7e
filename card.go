package jedna

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is one of the four playable colors, or Wild for the unassigned
// color on a wild card before a holder chooses one.
type Color int

const (
	ColorWild Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorWild:
		return "wild"
	default:
		return "invalid_color"
	}
}

func (c Color) notation() string {
	switch c {
	case ColorRed:
		return "r"
	case ColorGreen:
		return "g"
	case ColorBlue:
		return "b"
	case ColorYellow:
		return "y"
	default:
		return ""
	}
}

// ParseColor parses the lowercase color names used in wild_color fields on
// the wire (§6): "red", "green", "blue", or "yellow".
func ParseColor(text string) (Color, error) {
	switch strings.ToLower(text) {
	case "red":
		return ColorRed, nil
	case "green":
		return ColorGreen, nil
	case "blue":
		return ColorBlue, nil
	case "yellow":
		return ColorYellow, nil
	default:
		return ColorWild, fmt.Errorf("jedna: invalid color %q", text)
	}
}

func colorFromLetter(l byte) (Color, bool) {
	switch l {
	case 'r':
		return ColorRed, true
	case 'g':
		return ColorGreen, true
	case 'b':
		return ColorBlue, true
	case 'y':
		return ColorYellow, true
	default:
		return ColorWild, false
	}
}

// Figure is the face of a card: a number 0..9, one of the colored action
// cards, or one of the two wild cards.
type Figure int

const (
	Figure0 Figure = iota
	Figure1
	Figure2
	Figure3
	Figure4
	Figure5
	Figure6
	Figure7
	Figure8
	Figure9
	FigureSkip
	FigureReverse
	FigureDrawTwo
	FigureWild
	FigureWildDrawFour
)

func (f Figure) IsNumeric() bool {
	return Figure0 <= f && f <= Figure9
}

func (f Figure) IsWild() bool {
	return f == FigureWild || f == FigureWildDrawFour
}

// IsOffensive reports whether playing this figure forces the next player
// to draw cards.
func (f Figure) IsOffensive() bool {
	return f == FigureDrawTwo || f == FigureWildDrawFour
}

// IsWarPlayable reports whether this figure is legal to play during a war
// (DrawTwo, Reverse, WildDrawFour).
func (f Figure) IsWarPlayable() bool {
	return f == FigureDrawTwo || f == FigureReverse || f == FigureWildDrawFour
}

func (f Figure) String() string {
	switch {
	case f.IsNumeric():
		return strconv.Itoa(int(f))
	case f == FigureSkip:
		return "Skip"
	case f == FigureReverse:
		return "Reverse"
	case f == FigureDrawTwo:
		return "DrawTwo"
	case f == FigureWild:
		return "Wild"
	case f == FigureWildDrawFour:
		return "WildDrawFour"
	default:
		return fmt.Sprintf("invalid_figure(%d)", int(f))
	}
}

// Card is an immutable (color, figure) pair. Wild cards carry ColorWild
// until a holder attaches a chosen color with WithChosenColor.
type Card struct {
	Color  Color
	Figure Figure
}

// NewCard builds a non-wild card. Panics if figure is a wild figure; use
// NewWildCard for those.
func NewCard(color Color, figure Figure) Card {
	if figure.IsWild() {
		panic("jedna: NewCard called with a wild figure, use NewWildCard")
	}
	return Card{Color: color, Figure: figure}
}

// NewWildCard builds an unassigned wild or wild-draw-four card.
func NewWildCard(figure Figure) Card {
	if !figure.IsWild() {
		panic("jedna: NewWildCard called with a non-wild figure")
	}
	return Card{Color: ColorWild, Figure: figure}
}

// WithChosenColor returns a copy of the wild card with color attached.
// Panics if c is not wild or newColor is ColorWild.
func (c Card) WithChosenColor(newColor Color) Card {
	if !c.Figure.IsWild() {
		panic("jedna: WithChosenColor called on a non-wild card")
	}
	if newColor == ColorWild {
		panic("jedna: WithChosenColor requires a non-wild color")
	}
	c.Color = newColor
	return c
}

// ClearChosenColor resets a wild card back to ColorWild, as required when
// it is reshuffled from the discard pile back into the draw deck.
func (c Card) ClearChosenColor() Card {
	if !c.Figure.IsWild() {
		return c
	}
	c.Color = ColorWild
	return c
}

func (c Card) IsWild() bool {
	return c.Figure.IsWild()
}

func (c Card) IsOffensive() bool {
	return c.Figure.IsOffensive()
}

func (c Card) IsWarPlayable() bool {
	return c.Figure.IsWarPlayable()
}

// Value is the card's point value for scoring: face value for numerics,
// 20 for Skip/Reverse/DrawTwo, 50 for the wild cards.
func (c Card) Value() int {
	switch {
	case c.Figure.IsNumeric():
		return int(c.Figure)
	case c.Figure == FigureSkip, c.Figure == FigureReverse, c.Figure == FigureDrawTwo:
		return 20
	case c.Figure == FigureWild, c.Figure == FigureWildDrawFour:
		return 50
	default:
		return 0
	}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Figure.String(), c.Color.String())
}

// Format renders the card in the compact public notation used on the wire:
// "<color><figure>" for non-wild cards (r5, g+2, bs, yr), and
// "<figure><chosen-color-or-empty>" for wild cards (w, wr, wd4, wd4b).
func (c Card) Format() string {
	if c.Figure.IsWild() {
		base := "w"
		if c.Figure == FigureWildDrawFour {
			base = "wd4"
		}
		return base + c.Color.notation()
	}

	var figurePart string
	switch c.Figure {
	case FigureSkip:
		figurePart = "s"
	case FigureReverse:
		figurePart = "r"
	case FigureDrawTwo:
		figurePart = "+2"
	default:
		figurePart = strconv.Itoa(int(c.Figure))
	}

	return c.Color.notation() + figurePart
}

// ErrParseCard is the sentinel wrapped by every notation parse failure.
var ErrParseCard = fmt.Errorf("jedna: invalid card notation")

// ParseCard is the inverse of Format. Parsing is case-insensitive. "ww" is
// accepted as a historical alias for a bare Wild card.
func ParseCard(text string) (Card, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Card{}, fmt.Errorf("%w: empty notation", ErrParseCard)
	}

	if lower == "ww" {
		return NewWildCard(FigureWild), nil
	}

	if strings.HasPrefix(lower, "wd4") {
		rest := lower[len("wd4"):]
		return parseWildRemainder(FigureWildDrawFour, rest, text)
	}

	if strings.HasPrefix(lower, "w") {
		rest := lower[len("w"):]
		return parseWildRemainder(FigureWild, rest, text)
	}

	color, ok := colorFromLetter(lower[0])
	if !ok {
		return Card{}, fmt.Errorf("%w: %q: unknown color", ErrParseCard, text)
	}

	figureText := lower[1:]
	figure, err := parseFigure(figureText)
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %s", ErrParseCard, text, err)
	}

	return NewCard(color, figure), nil
}

func parseWildRemainder(figure Figure, rest, original string) (Card, error) {
	if rest == "" {
		return NewWildCard(figure), nil
	}
	if len(rest) != 1 {
		return Card{}, fmt.Errorf("%w: %q: trailing garbage after wild figure", ErrParseCard, original)
	}
	color, ok := colorFromLetter(rest[0])
	if !ok {
		return Card{}, fmt.Errorf("%w: %q: unknown chosen color", ErrParseCard, original)
	}
	return NewWildCard(figure).WithChosenColor(color), nil
}

func parseFigure(text string) (Figure, error) {
	switch text {
	case "s":
		return FigureSkip, nil
	case "r":
		return FigureReverse, nil
	case "+2":
		return FigureDrawTwo, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("unknown figure %q", text)
	}
	if n < 0 || n > 9 {
		return 0, fmt.Errorf("figure out of range: %d", n)
	}
	return Figure(n), nil
}

// EffectiveColor is the color that matching is performed against: the
// card's own color, or its chosen color if it is a played wild card.
func (c Card) EffectiveColor() Color {
	return c.Color
}

// Matches reports whether candidate may legally be played on top, ignoring
// game-state (war) restrictions — the pure §4.1 matching rule.
func Matches(top, candidate Card) bool {
	if candidate.IsWild() {
		return true
	}
	if candidate.Color == top.EffectiveColor() {
		return true
	}
	if candidate.Figure == top.Figure {
		return true
	}
	return false
}
