package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/pagedraw/fonts"
	"github.com/ByLCY/pagedraw/layout"
	"github.com/ByLCY/pagedraw/renderer"
)

// Renderer draws layout calls via github.com/tdewolff/canvas.
// 画布以逻辑单位（canvas 中的 mm）建模，栅格化时按 Scale 像素/单位输出。
type Renderer struct {
	opts renderer.Options

	c   *canvas.Canvas
	ctx *canvas.Context

	family   *canvas.FontFamily
	face     *canvas.FontFace
	fontSize float64

	pos     layout.Vec2
	pending []rect
}

var _ renderer.Renderer = (*Renderer)(nil)

type rect struct {
	x, y, w, h float64
}

// NewRenderer 创建一个 canvas 画布；opts.Font 为空时使用内置字体。
func NewRenderer(opts renderer.Options) (*Renderer, error) {
	opts = opts.WithDefaults()
	data := opts.Font
	if len(data) == 0 {
		var err error
		data, err = fonts.Load(fonts.Default)
		if err != nil {
			return nil, err
		}
	}
	family := canvas.NewFontFamily("pagedraw")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	c := canvas.New(opts.Width, opts.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与脚本保持左上角为原点

	r := &Renderer{
		opts:   opts,
		c:      c,
		ctx:    ctx,
		family: family,
	}
	r.SetFontSize(layout.DefaultFontSize)
	return r, nil
}

// SetFontSize 以逻辑单位设置字号；canvas 创建字体面需要 pt，这里做一次换算。
func (r *Renderer) SetFontSize(px float64) {
	r.fontSize = px
	r.face = r.family.Face(layout.ToPt(px), canvas.Black, canvas.FontRegular, canvas.FontNormal)
}

// MeasureText 返回文本在当前字号下的宽度（逻辑单位）。
func (r *Renderer) MeasureText(s string) float64 {
	if s == "" || r.face == nil {
		return 0
	}
	return r.face.TextWidth(s)
}

func (r *Renderer) MoveTo(x, y float64) {
	r.pos = layout.Vec2{X: x, Y: y}
}

// ShowText 在当前点绘制文本，当前点为基线起点。
func (r *Renderer) ShowText(s string) {
	if s == "" || r.face == nil {
		return
	}
	line := canvas.NewTextLine(r.face, s, canvas.Left)
	r.ctx.DrawText(r.pos.X, r.pos.Y, line)
}

func (r *Renderer) Rectangle(x, y, w, h float64) {
	r.pending = append(r.pending, rect{x: x, y: y, w: w, h: h})
}

// Stroke 描边所有待处理的矩形（不填充）。
func (r *Renderer) Stroke() {
	r.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	r.ctx.SetStrokeColor(canvas.Black)
	r.ctx.SetStrokeWidth(r.opts.LineWidth)
	for _, rc := range r.pending {
		r.ctx.DrawPath(rc.x, rc.y, canvas.Rectangle(rc.w, rc.h))
	}
	r.pending = r.pending[:0]
}

// PaintBackground 以 c 填充整个页面。
func (r *Renderer) PaintBackground(c color.Color) {
	r.ctx.SetFillColor(c)
	r.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	r.ctx.DrawPath(0, 0, canvas.Rectangle(r.opts.Width, r.opts.Height))
}

// Image 栅格化画布，尺寸为 Width*Scale × Height*Scale。
func (r *Renderer) Image() image.Image {
	return rasterizer.Draw(r.c, canvas.DPMM(r.opts.Scale), canvas.DefaultColorSpace)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}
