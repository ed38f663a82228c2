package renderer

import (
	"image"
	"io"
	"os"

	"github.com/k1LoW/errors"

	"github.com/ByLCY/pagedraw/layout"
)

// 默认页面尺寸（逻辑单位）与栅格化倍率。
const (
	DefaultPageWidth  = 595.0
	DefaultPageHeight = 842.0
	DefaultScale      = 2.0
	DefaultLineWidth  = 1.0
)

// Renderer 是一个可以被布局解释器绘制、最终编码为 PNG 的画布。
type Renderer interface {
	layout.Surface
	Image() image.Image
	EncodePNG(w io.Writer) error
}

// Options 描述画布尺寸、倍率、线宽与字体数据。
type Options struct {
	Width     float64 // 页面逻辑宽度
	Height    float64 // 页面逻辑高度
	Scale     float64 // 每个逻辑单位对应的像素数
	LineWidth float64 // 描边线宽（逻辑单位）
	Font      []byte  // TTF/OTF 字体数据
}

// WithDefaults 为未设置的字段填充默认值。
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultPageWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultPageHeight
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}

// PixelSize 返回输出图像的像素尺寸。
func (o Options) PixelSize() (int, int) {
	o = o.WithDefaults()
	return int(o.Width * o.Scale), int(o.Height * o.Scale)
}

// WritePNG 将画布编码为 PNG 写入 path。
func WritePNG(r Renderer, path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
