package renderer

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// overlayMargin is the gap between the overlay and the top-left corner, in
// window points.
const overlayMargin = 24

// overlayTexture is the uploaded info panel.
type overlayTexture struct {
	id            uint32
	width, height int
}

func (o *overlayTexture) Release() error {
	if o.id != 0 {
		gl.DeleteTextures(1, &o.id)
		o.id = 0
	}
	return nil
}

// SetOverlay uploads img as the screen-space panel drawn over the scene.
// A nil image removes the panel.
func (r *Renderer) SetOverlay(img *image.RGBA) error {
	if img == nil {
		if r.hud != nil {
			err := r.hud.Release()
			r.hud = nil
			return err
		}
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return errors.New("overlay image is empty")
	}
	if r.hud == nil {
		r.hud = &overlayTexture{}
		gl.GenTextures(1, &r.hud.id)
	}
	r.hud.width, r.hud.height = b.Dx(), b.Dy()

	gl.BindTexture(gl.TEXTURE_2D, r.hud.id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return glError("overlay")
}

// drawOverlay blends the panel over the frame. The image is premultiplied.
func (r *Renderer) drawOverlay() {
	if r.hud == nil || r.hud.id == 0 {
		return
	}
	rect := overlayRect(r.hud.width, r.hud.height, r.config.Width, r.config.Height, r.config.PixelRatio)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	r.overlay.Use()
	gl.Uniform4f(r.overlay.Uniform("uRect"), rect[0], rect[1], rect[2], rect[3])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.hud.id)
	gl.Uniform1i(r.overlay.Uniform("uTexture"), 0)
	gl.BindVertexArray(r.emptyVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// overlayRect places a w x h image at the top-left margin of a viewport,
// scaled by the pixel ratio, and returns x, y, width, height in NDC with
// (x, y) the bottom-left corner.
func overlayRect(w, h, viewW, viewH int, ratio float32) [4]float32 {
	if viewW <= 0 || viewH <= 0 {
		return [4]float32{}
	}
	pw := float32(w) * ratio / float32(viewW) * 2
	ph := float32(h) * ratio / float32(viewH) * 2
	mx := overlayMargin * ratio / float32(viewW) * 2
	my := overlayMargin * ratio / float32(viewH) * 2
	return [4]float32{-1 + mx, 1 - my - ph, pw, ph}
}

// ReadPixels returns the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
