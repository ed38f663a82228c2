package layout_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/pagedraw/layout"
	"github.com/ByLCY/pagedraw/renderer/trace"
	"github.com/ByLCY/pagedraw/script"
)

// run 是测试辅助：解析脚本并在固定字宽的记录画布上执行。
func run(t *testing.T, src string, opts layout.Options) (*layout.Result, *trace.Surface, error) {
	t.Helper()
	doc, err := script.ParseString(src)
	if err != nil {
		t.Fatalf("解析脚本失败: %v", err)
	}
	s := trace.NewFixed(advance)
	res, err := layout.Run(doc, s, opts)
	return res, s, err
}

// drawCalls 去掉启动时的背景与默认字号调用。
func drawCalls(s *trace.Surface) []trace.Call {
	calls := s.Calls()
	if len(calls) < 2 {
		return nil
	}
	return calls[2:]
}

func TestCommentsAndBlankLinesDrawNothing(t *testing.T) {
	res, s, err := run(t, "#comment\n\n# another comment\n\n", layout.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []trace.Call{
		{Op: trace.OpPaintBackground, Args: []float64{255, 255, 255, 255}},
		{Op: trace.OpSetFontSize, Args: []float64{layout.DefaultFontSize}},
	}
	if diff := cmp.Diff(want, s.Calls()); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(layout.DefaultState(), res.State); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestRectangleDoesNotMoveCursor(t *testing.T) {
	res, s, err := run(t, "x\t50\ny\t50\nwidth\t200\nheight\t30\nrectangle", layout.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []trace.Call{
		{Op: trace.OpRectangle, Args: []float64{50, 50, 200, 30}},
		{Op: trace.OpStroke},
	}
	if diff := cmp.Diff(want, drawCalls(s)); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
	if res.State.Cursor != (layout.Vec2{X: 50, Y: 50}) {
		t.Fatalf("cursor moved: %+v", res.State.Cursor)
	}
	if res.Directives != 5 {
		t.Fatalf("expected 5 directives, got %d", res.Directives)
	}
}

func TestTextBoxWrapsNarrowWidth(t *testing.T) {
	res, s, err := run(t, "size\t20\nwidth\t120\ntextbox\tthe quick brown fox", layout.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	avail := 120 - 2*layout.DefaultPadding
	lines := s.Texts()
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %q", lines)
	}
	for _, line := range lines {
		if w := s.MeasureText(line); w >= avail {
			t.Fatalf("line %q is %g wide, limit %g", line, w, avail)
		}
	}
	if s.FontSize() != 20 {
		t.Fatalf("size not propagated to surface: %g", s.FontSize())
	}
	wantHeight := 2*layout.DefaultPadding + float64(len(lines))*20
	if got := res.State.Cursor.Y - layout.DefaultCursorY; got != wantHeight {
		t.Fatalf("cursor advanced by %g, want %g", got, wantHeight)
	}
	if len(res.TextBoxes) != 1 || res.TextBoxes[0].Height != wantHeight {
		t.Fatalf("unexpected text boxes: %+v", res.TextBoxes)
	}
}

func TestTextHonorsJustification(t *testing.T) {
	src := strings.Join([]string{
		"x\t0",
		"y\t0",
		"width\t200",
		"justify\tcenter",
		"text\tabcde",
		"justify\tright",
		"text\tabcde",
		"justify\tsideways",
		"text\tabcde",
	}, "\n")
	res, s, err := run(t, src, layout.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []trace.Call{
		{Op: trace.OpMoveTo, Args: []float64{75, 12}},
		{Op: trace.OpShowText, Text: "abcde"},
		{Op: trace.OpMoveTo, Args: []float64{150, 24}},
		{Op: trace.OpShowText, Text: "abcde"},
		{Op: trace.OpMoveTo, Args: []float64{0, 36}},
		{Op: trace.OpShowText, Text: "abcde"},
	}
	if diff := cmp.Diff(want, drawCalls(s)); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
	if res.State.Cursor.Y != 36 {
		t.Fatalf("cursor.y = %g, want 36", res.State.Cursor.Y)
	}
	if res.State.Justify != layout.JustifyLeft {
		t.Fatalf("unknown justify value should fall back to left, got %s", res.State.Justify)
	}
}

func TestStatePersistsAndRelativeValues(t *testing.T) {
	src := strings.Join([]string{
		"x\t+10",
		"y\t-20",
		"xpad\t2",
		"ypad\t+1",
		"width\t-50",
		"height\t",
		"spacing\t15",
		"spacing\t-5",
		"size\t18",
	}, "\n")
	res, _, err := run(t, src, layout.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := layout.State{
		Cursor:   layout.Vec2{X: 110, Y: 90},
		Padding:  layout.Vec2{X: 2, Y: 7},
		Width:    50,
		Height:   100,
		FontSize: 18,
		Justify:  layout.JustifyLeft,
	}
	if diff := cmp.Diff(want, res.State); diff != "" {
		t.Fatalf("unexpected state (-want +got):\n%s", diff)
	}
}

func TestTextBoxUsesPaddingAndAdvancesCursor(t *testing.T) {
	src := "x\t0\ny\t0\nxpad\t0\nypad\t0\nwidth\t1000\ntextbox\t\ntext\tafter"
	_, s, err := run(t, src, layout.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []trace.Call{
		{Op: trace.OpMoveTo, Args: []float64{0, 12}},
		{Op: trace.OpShowText, Text: ""},
		{Op: trace.OpRectangle, Args: []float64{0, 0, 1000, 12}},
		{Op: trace.OpStroke},
		{Op: trace.OpMoveTo, Args: []float64{0, 24}},
		{Op: trace.OpShowText, Text: "after"},
	}
	if diff := cmp.Diff(want, drawCalls(s)); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
}

func TestUnrecognizedKeyIsLoggedAndSkipped(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	res, s, err := run(t, "color\tred\nrectangle", layout.Options{Logger: logger})
	if err != nil {
		t.Fatalf("unrecognized keys must not be fatal: %v", err)
	}
	if s.Count(trace.OpRectangle) != 1 {
		t.Fatalf("execution should continue after an unknown key")
	}
	if diff := cmp.Diff([]layout.SkippedLine{{Line: 1, Raw: "color\tred"}}, res.Skipped); diff != "" {
		t.Fatalf("unexpected skipped lines (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "Invalid line") || !strings.Contains(buf.String(), "color") {
		t.Fatalf("expected a diagnostic naming the line, got %q", buf.String())
	}
}

func TestMissingArgumentIsFatal(t *testing.T) {
	for _, key := range []string{"x", "y", "xpad", "ypad", "width", "height", "spacing", "size", "justify", "textbox", "text"} {
		_, s, err := run(t, "rectangle\n"+key+"\nrectangle", layout.Options{})
		if !errors.Is(err, layout.ErrMissingArgument) {
			t.Fatalf("%s: expected ErrMissingArgument, got %v", key, err)
		}
		var lerr *layout.LineError
		if !errors.As(err, &lerr) || lerr.Line != 2 || lerr.Raw != key {
			t.Fatalf("%s: expected line error on line 2, got %#v", key, err)
		}
		if s.Count(trace.OpRectangle) != 1 {
			t.Fatalf("%s: run should stop at the failing line", key)
		}
	}
}

func TestMalformedNumberIsFatal(t *testing.T) {
	for _, src := range []string{"x\tabc", "width\t+ten", "spacing\t+", "size\tbig"} {
		res, _, err := run(t, src, layout.Options{})
		if !errors.Is(err, layout.ErrMalformedNumber) {
			t.Fatalf("%q: expected ErrMalformedNumber, got %v", src, err)
		}
		if res != nil {
			t.Fatalf("%q: expected no result on fatal error", src)
		}
		if !strings.Contains(err.Error(), src) && !strings.Contains(err.Error(), strings.ReplaceAll(src, "\t", `\t`)) {
			t.Fatalf("%q: error should name the raw line, got %v", src, err)
		}
	}
}

func TestInitialStateOverride(t *testing.T) {
	initial := layout.DefaultState()
	initial.Cursor = layout.Vec2{X: 0, Y: 0}
	res, s, err := run(t, "text\tx", layout.Options{Initial: &initial})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := drawCalls(s)[0]; got.Args[0] != 0 || got.Args[1] != 12 {
		t.Fatalf("unexpected move_to %v", got)
	}
	if res.State.Cursor.Y != 12 {
		t.Fatalf("cursor.y = %g, want 12", res.State.Cursor.Y)
	}
}

func TestRunRejectsNilInputs(t *testing.T) {
	if _, err := layout.Run(nil, trace.NewFixed(1), layout.Options{}); err == nil {
		t.Fatalf("expected error for nil script")
	}
	if _, err := layout.Run(&script.Script{}, nil, layout.Options{}); err == nil {
		t.Fatalf("expected error for nil surface")
	}
}
