package ggrenderer

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/ByLCY/pagedraw/fonts"
	"github.com/ByLCY/pagedraw/layout"
	"github.com/ByLCY/pagedraw/renderer"
)

// Renderer draws layout calls on a fogleman/gg context.
// gg 的文字不随变换矩阵缩放，因此所有坐标与字号在这里手动乘以 Scale。
type Renderer struct {
	opts     renderer.Options
	dc       *gg.Context
	font     *truetype.Font
	fontSize float64
	pos      layout.Vec2
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建像素尺寸为 Width*Scale × Height*Scale 的 gg 画布。
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
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	w, h := opts.PixelSize()
	r := &Renderer{
		opts: opts,
		dc:   gg.NewContext(w, h),
		font: f,
	}
	r.SetFontSize(layout.DefaultFontSize)
	return r, nil
}

func (r *Renderer) SetFontSize(px float64) {
	r.fontSize = px
	r.dc.SetFontFace(truetype.NewFace(r.font, &truetype.Options{Size: px * r.opts.Scale}))
}

// MeasureText 返回逻辑单位下的文本宽度。
func (r *Renderer) MeasureText(s string) float64 {
	if s == "" {
		return 0
	}
	w, _ := r.dc.MeasureString(s)
	return w / r.opts.Scale
}

func (r *Renderer) MoveTo(x, y float64) {
	r.pos = layout.Vec2{X: x, Y: y}
}

func (r *Renderer) ShowText(s string) {
	if s == "" {
		return
	}
	r.dc.SetRGB(0, 0, 0)
	r.dc.DrawString(s, r.pos.X*r.opts.Scale, r.pos.Y*r.opts.Scale)
}

func (r *Renderer) Rectangle(x, y, w, h float64) {
	s := r.opts.Scale
	r.dc.DrawRectangle(x*s, y*s, w*s, h*s)
}

func (r *Renderer) Stroke() {
	r.dc.SetRGB(0, 0, 0)
	r.dc.SetLineWidth(r.opts.LineWidth * r.opts.Scale)
	r.dc.Stroke()
}

func (r *Renderer) PaintBackground(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Renderer) Image() image.Image {
	return r.dc.Image()
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}
