package layout

import (
	"image/color"
	"log/slog"
)

// Options 配置脚本执行阶段的依赖，例如日志与初始状态。
type Options struct {
	Logger  *slog.Logger // 为空时丢弃所有日志
	Initial *State       // 为空时使用 DefaultState()
}

// Measurer 负责测量单行文本在当前字号下的渲染宽度。
type Measurer interface {
	MeasureText(s string) float64
}

// Surface 是布局解释器唯一依赖的绘图能力，坐标均为页面逻辑单位。
// ShowText 以最近一次 MoveTo 的位置作为基线起点。
type Surface interface {
	Measurer
	SetFontSize(px float64)
	MoveTo(x, y float64)
	ShowText(s string)
	Rectangle(x, y, w, h float64)
	Stroke()
	PaintBackground(c color.Color)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) initial() State {
	if o.Initial != nil {
		return *o.Initial
	}
	return DefaultState()
}
