package layout

import "strings"

// 默认布局参数，与脚本未设置任何指令时的行为一致。
const (
	DefaultCursorX  = 100.0
	DefaultCursorY  = 100.0
	DefaultWidth    = 100.0
	DefaultHeight   = 100.0
	DefaultFontSize = 12.0
	DefaultPadding  = 6.0
)

// Vec2 表示页面坐标中的点或一对边距。
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Justify 是单行 text 指令的水平对齐方式。
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// ParseJustify 将脚本中的取值映射为对齐方式，无法识别的取值一律视为 left。
func ParseJustify(v string) Justify {
	switch v {
	case "center":
		return JustifyCenter
	case "right":
		return JustifyRight
	default:
		return JustifyLeft
	}
}

func (j Justify) String() string {
	switch j {
	case JustifyCenter:
		return "center"
	case JustifyRight:
		return "right"
	default:
		return "left"
	}
}

// MarshalText 让调试 JSON 输出可读的对齐名称。
func (j Justify) MarshalText() ([]byte, error) { return []byte(j.String()), nil }

// UnmarshalText 与 ParseJustify 保持一致。
func (j *Justify) UnmarshalText(b []byte) error {
	*j = ParseJustify(strings.TrimSpace(string(b)))
	return nil
}

// Offset 返回文本相对框左边缘的水平偏移。
// boxWidth 为当前框宽度，textWidth 为文本测量宽度。
func (j Justify) Offset(boxWidth, textWidth float64) float64 {
	switch j {
	case JustifyCenter:
		return (boxWidth - textWidth) / 2
	case JustifyRight:
		return boxWidth - textWidth
	default:
		return 0
	}
}

// State 保存脚本执行过程中持续生效的布局参数（后写覆盖先写）。
type State struct {
	Cursor   Vec2    `json:"cursor"`
	Padding  Vec2    `json:"padding"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"fontSize"`
	Justify  Justify `json:"justify"`
}

// DefaultState 返回每次执行开始时的初始状态。
func DefaultState() State {
	return State{
		Cursor:   Vec2{X: DefaultCursorX, Y: DefaultCursorY},
		Padding:  Vec2{X: DefaultPadding, Y: DefaultPadding},
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FontSize: DefaultFontSize,
		Justify:  JustifyLeft,
	}
}
