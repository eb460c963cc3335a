package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func TestWrap(t *testing.T) {
	face := basicfont.Face7x13 // 7px advance

	assert.Equal(t, []string{"aaa bbb", "ccc"}, Wrap(face, "aaa bbb ccc", 49))
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, Wrap(face, "aaa bbb ccc", 48))
	assert.Equal(t, []string{"supercalifragilistic", "x"}, Wrap(face, "supercalifragilistic x", 30))
	assert.Empty(t, Wrap(face, "   ", 100))
}

func TestWrapKeepsWords(t *testing.T) {
	face := basicfont.Face7x13
	lines := Wrap(face, Body, 348)
	require.NotEmpty(t, lines)

	for _, l := range lines {
		assert.LessOrEqual(t, font.MeasureString(face, l).Ceil(), 348)
	}
	assert.Equal(t, strings.Fields(Body), strings.Fields(strings.Join(lines, " ")))
}

func TestRender(t *testing.T) {
	p := Default()
	img := p.Render()

	b := img.Bounds()
	assert.Equal(t, p.MaxWidth, b.Dx())
	assert.Greater(t, b.Dy(), 2*p.Padding)

	// Corners stay background.
	assert.Equal(t, p.Background, img.RGBAAt(0, 0))
	assert.Equal(t, p.Background, img.RGBAAt(b.Dx()-1, b.Dy()-1))

	title, body := 0, 0
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			switch img.RGBAAt(x, y) {
			case p.TitleColor:
				title++
			case p.BodyColor:
				body++
			}
		}
	}
	assert.Positive(t, title)
	assert.Positive(t, body)
}

func TestRenderEmptyBody(t *testing.T) {
	p := Default()
	p.Body = ""
	img := p.Render()
	lineH := basicfont.Face7x13.Metrics().Height.Ceil()
	assert.Equal(t, 2*p.Padding+lineH*p.TitleScale, img.Bounds().Dy())
}
