package spine

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// twoColorShaderSrc tints textures with a light and a dark color. The light
// color arrives as the vertex color and the dark RGB in Custom0..2.
const twoColorShaderSrc = `//kage:unit pixels
package main

var Premultiplied float

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	tex := imageSrc0At(src)
	light := color
	dark := custom.rgb
	if Premultiplied == 0 {
		light.rgb *= light.a
		dark *= light.a
	}
	rgb := (tex.a-tex.rgb)*dark + tex.rgb*light.rgb
	return vec4(rgb, tex.a*light.a)
}
`

// twoColorShader compiles the renderer's tint shader on first use.
func (r *Renderer) twoColorShader() *ebiten.Shader {
	if r.shader == nil {
		s, err := ebiten.NewShader([]byte(twoColorShaderSrc))
		if err != nil {
			panic("spine: failed to compile two-color tint shader: " + err.Error())
		}
		r.shader = s
	}
	return r.shader
}

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// View maps skeleton space to screen pixels. The zero value means
	// identity; use YUpView to flip Spine's y-up space onto the screen.
	View [6]float64
	// Camera, when set, replaces View and culls frames outside its
	// visible area.
	Camera *Camera
	// Filter is the texture filter. The zero value is ebiten.FilterNearest.
	Filter ebiten.Filter
	// ScreenshotDir receives PNGs queued with Screenshot. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// Renderer submits generated frames to an ebiten image, one draw call per
// batch.
type Renderer struct {
	view   [6]float64
	camera *Camera
	filter ebiten.Filter

	verts    []ebiten.Vertex
	triOp    ebiten.DrawTrianglesOptions
	shaderOp ebiten.DrawTrianglesShaderOptions
	shader   *ebiten.Shader
	uniforms map[string]any

	screenshotDir   string
	screenshotQueue []string

	pool texturePool
}

// NewRenderer creates a renderer.
func NewRenderer(cfg RendererConfig) *Renderer {
	r := &Renderer{camera: cfg.Camera, filter: cfg.Filter, uniforms: map[string]any{"Premultiplied": float32(0)}}
	r.screenshotDir = cfg.ScreenshotDir
	if r.screenshotDir == "" {
		r.screenshotDir = "screenshots"
	}
	r.SetView(cfg.View)
	return r
}

// SetView replaces the view matrix. The zero matrix means identity.
func (r *Renderer) SetView(m [6]float64) {
	if m == ([6]float64{}) {
		m = identityTransform
	}
	r.view = m
}

// View returns the matrix Draw uses: the camera's when one is set.
func (r *Renderer) View() [6]float64 {
	if r.camera != nil {
		return r.camera.ViewMatrix()
	}
	return r.view
}

// Draw submits every batch of frame to target and returns the number of draw
// calls issued. Batches whose page has no image are skipped.
func (r *Renderer) Draw(target *ebiten.Image, frame *Frame) int {
	defer r.flushScreenshots(target, frame)
	if r.camera != nil && r.camera.Culls(frame) {
		return 0
	}
	return r.drawBatches(target, frame, r.View())
}

func (r *Renderer) drawBatches(target *ebiten.Image, frame *Frame, view [6]float64) int {
	calls := 0
	for i := range frame.Batches {
		b := &frame.Batches[i]
		if b.Page == nil || b.Page.Image == nil {
			continue
		}
		img := b.Page.Image
		r.verts = appendEbitenVertices(r.verts[:0], b.Vertices(frame.Buffer, frame.Layout),
			frame.Layout, view, img.Bounds())
		inds := b.Indices(frame.Buffer)

		if frame.Layout.TwoColorTint {
			if frame.PremultipliedAlpha {
				r.uniforms["Premultiplied"] = float32(1)
			} else {
				r.uniforms["Premultiplied"] = float32(0)
			}
			r.shaderOp.Images[0] = img
			r.shaderOp.Uniforms = r.uniforms
			r.shaderOp.Blend = b.Blend.EbitenBlend()
			target.DrawTrianglesShader32(r.verts, inds, r.twoColorShader(), &r.shaderOp)
		} else {
			r.triOp.Blend = b.Blend.EbitenBlend()
			r.triOp.Filter = r.filter
			if frame.PremultipliedAlpha {
				r.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
			} else {
				r.triOp.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
			}
			target.DrawTriangles32(r.verts, inds, img, &r.triOp)
		}
		calls++
	}
	return calls
}

// appendEbitenVertices converts interleaved floats to ebiten vertices.
// Positions go through view; UVs are scaled to the pixel rect of the page
// image.
func appendEbitenVertices(dst []ebiten.Vertex, src []float32, layout VertexLayout, view [6]float64, page image.Rectangle) []ebiten.Vertex {
	stride := layout.Stride()
	minX, minY := float32(page.Min.X), float32(page.Min.Y)
	w, h := float32(page.Dx()), float32(page.Dy())
	a, b, c, d := float32(view[0]), float32(view[1]), float32(view[2]), float32(view[3])
	tx, ty := float32(view[4]), float32(view[5])
	for i := 0; i+stride <= len(src); i += stride {
		x, y := src[i], src[i+1]
		v := ebiten.Vertex{
			DstX:   a*x + c*y + tx,
			DstY:   b*x + d*y + ty,
			ColorR: src[i+2],
			ColorG: src[i+3],
			ColorB: src[i+4],
			ColorA: src[i+5],
			SrcX:   minX + src[i+6]*w,
			SrcY:   minY + src[i+7]*h,
		}
		if layout.TwoColorTint {
			v.Custom0 = src[i+8]
			v.Custom1 = src[i+9]
			v.Custom2 = src[i+10]
		}
		dst = append(dst, v)
	}
	return dst
}
