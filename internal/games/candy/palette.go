package candy

import (
	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy/engine"
)

// Sprite is how a candy type is drawn.
type Sprite struct {
	Glyph rune
	Color core.Color
}

// Palette maps candy type ids to sprites. Ids beyond the palette wrap
// around, so any catalog can be drawn.
type Palette []Sprite

// DefaultPalette covers the nine candy types of the built-in catalog.
var DefaultPalette = Palette{
	{Glyph: '●', Color: core.ColorRed},
	{Glyph: '◆', Color: core.ColorOrange},
	{Glyph: '▲', Color: core.ColorBrightYellow},
	{Glyph: '■', Color: core.ColorBrightGreen},
	{Glyph: '★', Color: core.ColorBrightBlue},
	{Glyph: '♥', Color: core.ColorPink},
	{Glyph: '♣', Color: core.ColorPurple},
	{Glyph: '♠', Color: core.ColorBrightCyan},
	{Glyph: '♦', Color: core.ColorBrightWhite},
}

// Sprite returns the sprite for a candy type. Empty cells are blank.
func (p Palette) Sprite(t engine.CandyType) Sprite {
	if t < 0 || len(p) == 0 {
		return Sprite{Glyph: ' ', Color: core.ColorDefault}
	}
	return p[int(t)%len(p)]
}
