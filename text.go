package cardstack

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64 // 0 disables wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	lines       []textLine
	measuredW   float64
	measuredH   float64

	// Rendered TTF cache
	image      *ebiten.Image
	imageDirty bool
}

// textLine stores one wrapped line and its measured width.
type textLine struct {
	text  string
	width float64
}

// SetContent replaces the text and invalidates the layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.Invalidate()
}

// Invalidate forces a relayout on next use. Call after changing Font, Align,
// WrapWidth, Color or LineHeight directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Size returns the laid-out width and height of the block.
func (tb *TextBlock) Size() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// Lines returns the wrapped lines of the current layout.
func (tb *TextBlock) Lines() []string {
	tb.layout()
	out := make([]string, len(tb.lines))
	for i, l := range tb.lines {
		out[i] = l.text
	}
	return out
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes wrapped lines if dirty.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	tb.imageDirty = true

	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil || tb.Content == "" {
		return
	}

	for _, s := range wrapLines(tb.Font, tb.Content, tb.WrapWidth) {
		w, _ := tb.Font.MeasureString(s)
		tb.lines = append(tb.lines, textLine{text: s, width: w})
		if w > tb.measuredW {
			tb.measuredW = w
		}
	}
	if tb.WrapWidth > 0 && tb.Align != TextAlignLeft {
		tb.measuredW = tb.WrapWidth
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
}

// wrapLines breaks content into lines no wider than maxW. Explicit newlines
// always break. A single word wider than maxW gets a line to itself.
func wrapLines(f Font, content string, maxW float64) []string {
	var out []string
	for _, para := range strings.Split(content, "\n") {
		if maxW <= 0 {
			out = append(out, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if nw, _ := f.MeasureString(next); nw > maxW {
				out = append(out, cur)
				cur = w
				continue
			}
			cur = next
		}
		out = append(out, cur)
	}
	return out
}

// lineOffset returns the x offset of line i for the block's alignment.
func (tb *TextBlock) lineOffset(i int) float64 {
	switch tb.Align {
	case TextAlignCenter:
		return (tb.measuredW - tb.lines[i].width) / 2
	case TextAlignRight:
		return tb.measuredW - tb.lines[i].width
	}
	return 0
}

// render returns the cached text image, re-rendering it when the layout
// changed. Only TTF fonts render; other fonts return nil.
func (tb *TextBlock) render() *ebiten.Image {
	tb.layout()
	f, ok := tb.Font.(*TTFFont)
	if !ok || tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	if !tb.imageDirty && tb.image != nil {
		return tb.image
	}
	tb.imageDirty = false

	w := int(tb.measuredW) + 1
	h := int(tb.measuredH) + 1
	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(w, h)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(w, h)
	}

	lh := tb.lineHeight()
	for i, line := range tb.lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(tb.lineOffset(i), float64(i)*lh)
		op.ColorScale.ScaleWithColor(tb.Color.toRGBA())
		text.Draw(tb.image, line.text, f.face, op)
	}
	return tb.image
}

// release frees the cached image.
func (tb *TextBlock) release() {
	if tb.image != nil {
		tb.image.Deallocate()
		tb.image = nil
	}
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("cardstack: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}
