// Package overlay rasterizes the static info panel shown over the scene.
package overlay

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Panel text.
const (
	Title = "Citadel of Voxels"
	Body  = "Glide through a handcrafted voxel kingdom where a grand castle watches over a lively " +
		"coastal village. Let the shimmering waters and floating mist set the tone for an " +
		"evocative cinematic journey."
)

// Panel describes the info panel layout. Colours are premultiplied.
type Panel struct {
	Title       string
	Body        string
	MaxWidth    int // total width in pixels, padding included
	Padding     int
	TitleScale  int
	Gap         int // between title and body
	LineSpacing int
	Background  color.RGBA
	TitleColor  color.RGBA
	BodyColor   color.RGBA
}

// Default returns the stock panel.
func Default() Panel {
	return Panel{
		Title:       Title,
		Body:        Body,
		MaxWidth:    380,
		Padding:     16,
		TitleScale:  2,
		Gap:         10,
		LineSpacing: 4,
		Background:  color.RGBA{R: 5, G: 11, B: 20, A: 166},
		TitleColor:  color.RGBA{R: 240, G: 244, B: 255, A: 255},
		BodyColor:   color.RGBA{R: 196, G: 212, B: 236, A: 255},
	}
}

// Wrap breaks text into lines no wider than maxWidth when drawn with
// face. A single word wider than maxWidth gets a line of its own.
func Wrap(face font.Face, text string, maxWidth int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Render draws the panel into a new image sized to fit its text.
func (p Panel) Render() *image.RGBA {
	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil()
	scale := max(p.TitleScale, 1)
	inner := max(p.MaxWidth-2*p.Padding, 1)

	titleLines := Wrap(face, p.Title, inner/scale)
	bodyLines := Wrap(face, p.Body, inner)

	titleH := len(titleLines) * lineH * scale
	bodyH := len(bodyLines) * (lineH + p.LineSpacing)
	height := 2*p.Padding + titleH + bodyH
	if len(titleLines) > 0 && len(bodyLines) > 0 {
		height += p.Gap
	}

	img := image.NewRGBA(image.Rect(0, 0, p.MaxWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	y := p.Padding
	if len(titleLines) > 0 {
		small := image.NewRGBA(image.Rect(0, 0, inner/scale, len(titleLines)*lineH))
		drawLines(small, face, titleLines, p.TitleColor, lineH, 0, 0)
		dst := image.Rect(p.Padding, y, p.Padding+small.Bounds().Dx()*scale, y+titleH)
		draw.NearestNeighbor.Scale(img, dst, small, small.Bounds(), draw.Over, nil)
		y += titleH + p.Gap
	}
	drawLines(img, face, bodyLines, p.BodyColor, lineH+p.LineSpacing, p.Padding, y)
	return img
}

func drawLines(dst draw.Image, face font.Face, lines []string, c color.Color, step, x, y int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		d.Dot = fixed.P(x, y+i*step+ascent)
		d.DrawString(line)
	}
}
