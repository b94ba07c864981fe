// Package assets loads fonts and trail images for the seasons app.
package assets

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/cardstack"
)

// Fonts is the set of faces used by the card stack.
type Fonts struct {
	Title *cardstack.TTFFont
	Body  *cardstack.TTFFont
}

// LoadFonts loads Go Bold for titles and Go Regular for body text.
func LoadFonts(titleSize, bodySize float64) (Fonts, error) {
	title, err := cardstack.LoadTTFFont(gobold.TTF, titleSize)
	if err != nil {
		return Fonts{}, fmt.Errorf("load title font: %w", err)
	}
	body, err := cardstack.LoadTTFFont(goregular.TTF, bodySize)
	if err != nil {
		return Fonts{}, fmt.Errorf("load body font: %w", err)
	}
	return Fonts{Title: title, Body: body}, nil
}
