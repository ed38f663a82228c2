package layout

import "strings"

// Placement 是一段已确定基线位置的文本。
type Placement struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// TextBox 表示一个排好版的文本框：若干行文本加外框。
type TextBox struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Lines  []Placement `json:"lines"`
}

// Wrap 使用贪心算法将 text 按空白拆词后填充进宽度 avail。
// 单词永远不会被拆开：超宽的单词独占一行。结果至少包含一行（可能为空串）。
func Wrap(m Measurer, text string, avail float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if m.MeasureText(candidate) > avail {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// LayoutTextBox 计算文本框内每行的基线位置以及总高度。
// 高度 = 上边距 + 行数 × fontHeight + 下边距。
func LayoutTextBox(m Measurer, origin, pad Vec2, width, fontHeight float64, text string) TextBox {
	lines := Wrap(m, text, width-2*pad.X)
	tb := TextBox{
		X:     origin.X,
		Y:     origin.Y,
		Width: width,
		Lines: make([]Placement, 0, len(lines)),
	}
	height := pad.Y
	for _, line := range lines {
		tb.Lines = append(tb.Lines, Placement{
			Content: line,
			X:       origin.X + pad.X,
			Y:       origin.Y + fontHeight + height,
		})
		height += fontHeight
	}
	tb.Height = height + pad.Y
	return tb
}

// DrawTextBox 排版并绘制文本框，返回消耗的垂直高度供调用方推进光标。
func DrawTextBox(s Surface, origin, pad Vec2, width, fontHeight float64, text string) float64 {
	tb := LayoutTextBox(s, origin, pad, width, fontHeight, text)
	drawTextBox(s, tb)
	return tb.Height
}

func drawTextBox(s Surface, tb TextBox) {
	for _, line := range tb.Lines {
		s.MoveTo(line.X, line.Y)
		s.ShowText(line.Content)
	}
	s.Rectangle(tb.X, tb.Y, tb.Width, tb.Height)
	s.Stroke()
}

// LayoutText 计算单行文本在当前对齐方式下的基线位置。
func LayoutText(m Measurer, cursor Vec2, boxWidth, fontSize float64, j Justify, text string) Placement {
	return Placement{
		Content: text,
		X:       cursor.X + j.Offset(boxWidth, m.MeasureText(text)),
		Y:       cursor.Y + fontSize,
	}
}
