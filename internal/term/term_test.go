package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/opuspack/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	if !Enabled() || Green == "" {
		t.Fatal("ColorAlways should enable colors")
	}

	Configure(config.ColorNever)
	if Enabled() || Red != "" || NC != "" {
		t.Fatal("ColorNever should clear colors")
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil file reported as terminal")
	}
}
