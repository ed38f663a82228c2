package layout

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/ByLCY/pagedraw/script"
)

// Result 汇总一次脚本执行的结果。
type Result struct {
	State      State          `json:"state"`
	Directives int            `json:"directives"`
	Skipped    []SkippedLine  `json:"skipped,omitempty"`
	TextBoxes  []TextBox      `json:"textBoxes,omitempty"`
	Texts      []Placement    `json:"texts,omitempty"`
	Rects      []RectangleBox `json:"rects,omitempty"`
}

// SkippedLine 记录因无法识别而被跳过的脚本行。
type SkippedLine struct {
	Line int    `json:"line"`
	Raw  string `json:"raw"`
}

// RectangleBox 是 rectangle 指令绘制的描边矩形。
type RectangleBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// machine 持有一次执行独占的可变状态。
type machine struct {
	state   State
	surface Surface
	log     *slog.Logger
	result  *Result
}

type handler func(m *machine, line *script.Line) error

type directive struct {
	needsArg bool
	apply    handler
}

var directives = map[string]directive{
	"x":         {needsArg: true, apply: relative(func(s *State) *float64 { return &s.Cursor.X })},
	"y":         {needsArg: true, apply: relative(func(s *State) *float64 { return &s.Cursor.Y })},
	"xpad":      {needsArg: true, apply: relative(func(s *State) *float64 { return &s.Padding.X })},
	"ypad":      {needsArg: true, apply: relative(func(s *State) *float64 { return &s.Padding.Y })},
	"width":     {needsArg: true, apply: relative(func(s *State) *float64 { return &s.Width })},
	"height":    {needsArg: true, apply: relative(func(s *State) *float64 { return &s.Height })},
	"spacing":   {needsArg: true, apply: handleSpacing},
	"size":      {needsArg: true, apply: handleSize},
	"justify":   {needsArg: true, apply: handleJustify},
	"rectangle": {needsArg: false, apply: handleRectangle},
	"textbox":   {needsArg: true, apply: handleTextBox},
	"text":      {needsArg: true, apply: handleText},
}

// Run 按顺序执行脚本中的每条指令，把绘制调用发往 surface。
// 遇到致命错误（数值格式错误、缺少参数）立即返回，调用方不应输出图像。
func Run(doc *script.Script, surface Surface, opts Options) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("脚本为空")
	}
	if surface == nil {
		return nil, fmt.Errorf("layout: 缺少绘图后端 Surface")
	}

	m := &machine{
		state:   opts.initial(),
		surface: surface,
		log:     opts.logger(),
		result:  &Result{},
	}
	surface.PaintBackground(color.White)
	surface.SetFontSize(m.state.FontSize)

	for _, line := range doc.Lines {
		if err := m.exec(line); err != nil {
			return nil, err
		}
	}
	m.result.State = m.state
	return m.result, nil
}

func (m *machine) exec(line *script.Line) error {
	d, ok := directives[line.Key]
	if !ok {
		m.log.Warn("Invalid line",
			slog.Int("line", line.Number()),
			slog.String("raw", line.Raw),
			slog.Any("error", ErrUnrecognizedKey))
		m.result.Skipped = append(m.result.Skipped, SkippedLine{Line: line.Number(), Raw: line.Raw})
		return nil
	}
	if d.needsArg {
		if _, ok := line.Arg(0); !ok {
			return lineError(line, fmt.Errorf("%w: %s", ErrMissingArgument, line.Key))
		}
	}
	if err := d.apply(m, line); err != nil {
		return lineError(line, err)
	}
	m.result.Directives++
	m.log.Debug("applied directive",
		slog.Int("line", line.Number()),
		slog.String("key", line.Key),
		slog.Float64("x", m.state.Cursor.X),
		slog.Float64("y", m.state.Cursor.Y))
	return nil
}

// relative 生成支持绝对/相对数值表达式的赋值指令。
func relative(field func(s *State) *float64) handler {
	return func(m *machine, line *script.Line) error {
		arg, _ := line.Arg(0)
		target := field(&m.state)
		v, err := ReadValue(arg, *target)
		if err != nil {
			return err
		}
		*target = v
		return nil
	}
}

func handleSpacing(m *machine, line *script.Line) error {
	arg, _ := line.Arg(0)
	v, err := ReadAbsolute(arg)
	if err != nil {
		return err
	}
	m.state.Cursor.Y += v
	return nil
}

func handleSize(m *machine, line *script.Line) error {
	arg, _ := line.Arg(0)
	v, err := ReadAbsolute(arg)
	if err != nil {
		return err
	}
	m.state.FontSize = v
	m.surface.SetFontSize(v)
	return nil
}

func handleJustify(m *machine, line *script.Line) error {
	arg, _ := line.Arg(0)
	m.state.Justify = ParseJustify(arg)
	return nil
}

func handleRectangle(m *machine, _ *script.Line) error {
	rc := RectangleBox{
		X:      m.state.Cursor.X,
		Y:      m.state.Cursor.Y,
		Width:  m.state.Width,
		Height: m.state.Height,
	}
	m.surface.Rectangle(rc.X, rc.Y, rc.Width, rc.Height)
	m.surface.Stroke()
	m.result.Rects = append(m.result.Rects, rc)
	return nil
}

func handleTextBox(m *machine, line *script.Line) error {
	text, _ := line.Arg(0)
	tb := LayoutTextBox(m.surface, m.state.Cursor, m.state.Padding, m.state.Width, m.state.FontSize, text)
	drawTextBox(m.surface, tb)
	m.result.TextBoxes = append(m.result.TextBoxes, tb)
	m.state.Cursor.Y += tb.Height
	return nil
}

func handleText(m *machine, line *script.Line) error {
	text, _ := line.Arg(0)
	p := LayoutText(m.surface, m.state.Cursor, m.state.Width, m.state.FontSize, m.state.Justify, text)
	m.surface.MoveTo(p.X, p.Y)
	m.surface.ShowText(p.Content)
	m.result.Texts = append(m.result.Texts, p)
	m.state.Cursor.Y += m.state.FontSize
	return nil
}
