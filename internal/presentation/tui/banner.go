package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the calcgate banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"            _                 _       ", "#818cf8"},
		{"   ___ __ _| | ___ __ _  __ _| |_ ___ ", "#a78bfa"},
		{"  / __/ _` | |/ __/ _` |/ _` | __/ _ \\", "#c084fc"},
		{" | (_| (_| | | (_| (_| | (_| | ||  __/", "#e879f9"},
		{"  \\___\\__,_|_|\\___\\__, |\\__,_|\\__\\___|", "#f472b6"},
		{"                  |___/               ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+version).Faint())
}

// Outcome styles a result line green and an error line red.
func Outcome(text string, ok bool) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String(text).Foreground(p.Color("#34d399")).Bold().String()
	}
	return termenv.String(text).Foreground(p.Color("#f87171")).String()
}
