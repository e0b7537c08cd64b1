package cli

import (
	"fmt"
	"io"

	fcolor "github.com/fatih/color"
)

// Errorf writes a red error line to w.
func Errorf(w io.Writer, format string, args ...any) {
	red := fcolor.New(fcolor.FgRed, fcolor.Bold)
	_, _ = red.Fprint(w, "✗ ")
	_, _ = fmt.Fprintf(w, format, args...)
	_, _ = fmt.Fprintln(w)
}
