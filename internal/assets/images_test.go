package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestListImages(t *testing.T) {
	fsys := fstest.MapFS{
		"b.png":        {Data: []byte("x")},
		"a.JPG":        {Data: []byte("x")},
		"c.jpeg":       {Data: []byte("x")},
		"notes.txt":    {Data: []byte("x")},
		"sub/d.png":    {Data: []byte("x")},
		"no-extension": {Data: []byte("x")},
	}
	got, err := ListImages(fsys)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.JPG", "b.png", "c.jpeg"}
	if len(got) != len(want) {
		t.Fatalf("ListImages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListImages[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadTrailImages(t *testing.T) {
	fsys := fstest.MapFS{
		"1.png": {Data: encodePNG(t, 200, 100)},
		"2.png": {Data: encodePNG(t, 50, 100)},
		"3.png": {Data: encodePNG(t, 10, 10)},
	}
	imgs, err := LoadTrailImages(context.Background(), fsys, 40)
	if err != nil {
		t.Fatal(err)
	}
	want := []image.Point{{40, 20}, {20, 40}, {40, 40}}
	if len(imgs) != len(want) {
		t.Fatalf("len = %d, want %d", len(imgs), len(want))
	}
	for i, img := range imgs {
		if got := img.Bounds().Size(); got != want[i] {
			t.Errorf("image %d size = %v, want %v", i, got, want[i])
		}
	}
}

func TestLoadTrailImagesKeepsSize(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: encodePNG(t, 30, 12)}}
	imgs, err := LoadTrailImages(context.Background(), fsys, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := imgs[0].Bounds().Size(); got != (image.Point{30, 12}) {
		t.Errorf("size = %v, want 30x12", got)
	}
}

func TestLoadTrailImagesDecodeError(t *testing.T) {
	fsys := fstest.MapFS{
		"good.png": {Data: encodePNG(t, 4, 4)},
		"bad.png":  {Data: []byte("not a png")},
	}
	if _, err := LoadTrailImages(context.Background(), fsys, 0); err == nil {
		t.Error("expected a decode error")
	}
}

func TestLoadTrailImagesCanceled(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: encodePNG(t, 4, 4)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadTrailImages(ctx, fsys, 0); err == nil {
		t.Error("expected a cancellation error")
	}
}

func TestLoadTrailImagesEmpty(t *testing.T) {
	imgs, err := LoadTrailImages(context.Background(), fstest.MapFS{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 0 {
		t.Errorf("len = %d, want 0", len(imgs))
	}
}

func TestShapes(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	imgs := Shapes(4, 16, []color.Color{red, blue})
	if len(imgs) != 4 {
		t.Fatalf("len = %d, want 4", len(imgs))
	}
	centers := []color.NRGBA{red, blue, red, blue}
	for i, img := range imgs {
		if got := img.Bounds().Size(); got != (image.Point{16, 16}) {
			t.Errorf("shape %d size = %v", i, got)
		}
		c := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
		if c.A != 0 {
			t.Errorf("shape %d corner alpha = %d, want 0", i, c.A)
		}
		// Rings are hollow; sample their edge instead of the center.
		x, y := 8, 8
		if i%3 == 1 {
			x = 1
		}
		c = color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if c != centers[i] {
			t.Errorf("shape %d at (%d,%d) = %v, want %v", i, x, y, c, centers[i])
		}
	}
}

func TestShapesEmptyPalette(t *testing.T) {
	imgs := Shapes(1, 8, nil)
	c := color.NRGBAModel.Convert(imgs[0].At(4, 4)).(color.NRGBA)
	if c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("center = %v, want white", c)
	}
}
