package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// maxDecoders bounds concurrent image decodes.
const maxDecoders = 4

// ListImages returns the PNG and JPEG files at the top of fsys, sorted by name.
func ListImages(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("error listing images: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadTrailImages decodes every image in fsys concurrently and scales each to
// fit a size×size box. size 0 keeps the original dimensions. The result is in
// file name order. The first failure cancels the remaining decodes.
func LoadTrailImages(ctx context.Context, fsys fs.FS, size uint) ([]image.Image, error) {
	names, err := ListImages(fsys)
	if err != nil {
		return nil, err
	}
	out := make([]image.Image, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDecoders)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(fsys, name)
			if err != nil {
				return err
			}
			out[i] = Fit(img, size)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	return img, nil
}

// Fit scales img so that its longer side is size pixels, keeping the aspect
// ratio. size 0 returns img unchanged.
func Fit(img image.Image, size uint) image.Image {
	if size == 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		return resize.Resize(size, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, size, img, resize.Lanczos3)
}

// Shapes draws n simple trail sprites (discs, rings and diamonds) cycling
// through palette. Used when no image directory is configured.
func Shapes(n, size int, palette []color.Color) []image.Image {
	if len(palette) == 0 {
		palette = []color.Color{color.White}
	}
	out := make([]image.Image, n)
	for i := range out {
		c := color.NRGBAModel.Convert(palette[i%len(palette)]).(color.NRGBA)
		out[i] = drawShape(i%3, size, c)
	}
	return out
}

func drawShape(kind, size int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			var inside bool
			switch kind {
			case 0: // disc
				inside = math.Hypot(dx, dy) <= r
			case 1: // ring
				d := math.Hypot(dx, dy)
				inside = d <= r && d >= r*0.6
			default: // diamond
				inside = math.Abs(dx)+math.Abs(dy) <= r
			}
			if inside {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// ToEbiten uploads images for drawing. Must run on the game thread.
func ToEbiten(imgs []image.Image) []*ebiten.Image {
	out := make([]*ebiten.Image, len(imgs))
	for i, img := range imgs {
		out[i] = ebiten.NewImageFromImage(img)
	}
	return out
}
