package display

import (
	"fmt"
	"io"

	"github.com/backmassage/opuspack/internal/term"
)

// PrintBanner writes the title banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer, version string) {
	rule := "============================================================"
	fmt.Fprint(w, term.Magenta)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  opuspack v%s - audio to OGG/Opus for the SD music player\n", version)
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, term.NC)
	fmt.Fprintln(w)
}
