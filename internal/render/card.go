// Package render draws the shareable summary card. The card is a fixed-width
// dark panel rendered at 2x for crisp exports, using the embedded Go fonts so
// no system font lookup is needed.
package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"tripsplit/internal/share"
)

const (
	cardScale = 2
	baseWidth = 540
	basePad   = 28
)

// Card palette. The background is fixed so exports look the same everywhere.
const (
	colorBackground = "#111827"
	colorText       = "#f9fafb"
	colorMuted      = "#9ca3af"
	colorAccent     = "#34d399"
	colorWarn       = "#f87171"
)

// Card renders summary line models as PNG images. Build one with NewCard and
// reuse it; the parsed font faces are shared across renders.
type Card struct {
	title   font.Face
	heading font.Face
	body    font.Face
	detail  font.Face
}

// NewCard parses the embedded fonts.
func NewCard() (*Card, error) {
	title, err := newFace(gobold.TTF, 26*cardScale)
	if err != nil {
		return nil, err
	}
	heading, err := newFace(gobold.TTF, 17*cardScale)
	if err != nil {
		return nil, err
	}
	body, err := newFace(goregular.TTF, 15*cardScale)
	if err != nil {
		return nil, err
	}
	detail, err := newFace(goregular.TTF, 13*cardScale)
	if err != nil {
		return nil, err
	}
	return &Card{title: title, heading: heading, body: body, detail: detail}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}

// RenderPNG draws the summary onto the card and writes it as PNG. The card
// height follows the line count, so short and long trips both fit.
func (c *Card) RenderPNG(w io.Writer, s share.Summary) error {
	width := baseWidth * cardScale
	pad := basePad * cardScale

	height := 2 * pad
	for _, line := range s.Lines {
		height += lineHeight(line.Kind)
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	y := float64(pad)
	for _, line := range s.Lines {
		h := float64(lineHeight(line.Kind))
		if line.Kind != share.LineBlank {
			face, hex, indent := c.style(line.Kind)
			dc.SetFontFace(face)
			dc.SetHexColor(hex)
			dc.DrawString(line.Text, float64(pad+indent), y+h*0.75)
		}
		y += h
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	return nil
}

func lineHeight(kind share.LineKind) int {
	switch kind {
	case share.LineTitle:
		return 40 * cardScale
	case share.LineHeading, share.LineTotal:
		return 28 * cardScale
	case share.LineDetail:
		return 20 * cardScale
	case share.LineBlank:
		return 14 * cardScale
	default:
		return 24 * cardScale
	}
}

func (c *Card) style(kind share.LineKind) (font.Face, string, int) {
	switch kind {
	case share.LineTitle:
		return c.title, colorText, 0
	case share.LineCount:
		return c.body, colorMuted, 0
	case share.LineInfo:
		return c.body, colorText, 0
	case share.LineHeading:
		return c.heading, colorText, 0
	case share.LineItem:
		return c.body, colorText, 0
	case share.LineDetail:
		return c.detail, colorMuted, 16 * cardScale
	case share.LineTotal:
		return c.heading, colorAccent, 0
	case share.LineOverrun:
		return c.body, colorWarn, 0
	default:
		return c.body, colorText, 0
	}
}
