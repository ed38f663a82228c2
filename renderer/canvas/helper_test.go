package canvasrenderer

import (
	"image/color"
	"testing"

	"github.com/ByLCY/pagedraw/script"
)

func whiteColor() color.Color { return color.White }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mustScript(t *testing.T, src string) *script.Script {
	t.Helper()
	doc, err := script.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}
