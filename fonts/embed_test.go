package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range append(Names(), "", "embed:gomono") {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned no data", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, []byte("not really a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load file failed: %v", err)
	}
	if string(data) != "not really a font" {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("embed:nope"); err == nil {
		t.Fatalf("expected error for unknown built-in font")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatalf("expected error for missing font file")
	}
}
