// Package formatter renders seat lists for people: a section tree and a
// group-by-group diff.
package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/opal-lang/tutti/core/instfmt"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// FormatTree renders sections as a tree: sections, their groups, then one
// line per seat.
func FormatTree(w io.Writer, title string, sections []instfmt.Section, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s:\n", title)

	if len(sections) == 0 {
		_, _ = fmt.Fprintf(w, "(no seats)\n")
		return
	}

	for i, sec := range sections {
		last := i == len(sections)-1
		name := Colorize(sec.Name, ColorBlue, useColor)
		_, _ = fmt.Fprintf(w, "%s%s (%d)\n", branch(last), name, sec.Count())
		renderGroups(w, sec.Groups, indent(last), useColor)
	}
}

func renderGroups(w io.Writer, groups []instfmt.Group, prefix string, useColor bool) {
	for i, g := range groups {
		last := i == len(groups)-1
		_, _ = fmt.Fprintf(w, "%s%s%s\n", prefix, branch(last), Colorize(g.Name, ColorCyan, useColor))
		for j, e := range g.Entries {
			_, _ = fmt.Fprintf(w, "%s%s%s\n", prefix+indent(last), branch(j == len(g.Entries)-1), FormatEntry(e, useColor))
		}
	}
}

// FormatEntry renders one seat: "Vln 2", "Fl (principal) +Picc, AFl".
func FormatEntry(e instfmt.Entry, useColor bool) string {
	var b strings.Builder
	b.WriteString(e.Instrument.Label())
	if e.Seat.Position > 0 {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(e.Seat.Position))
	}
	if e.Seat.Principal {
		b.WriteString(Colorize(" (principal)", ColorYellow, useColor))
	}
	if e.Doubling != "" {
		b.WriteString(Colorize(" +"+e.Doubling, ColorGreen, useColor))
	}
	if e.Seat.Comment != "" {
		b.WriteString(Colorize(" # "+e.Seat.Comment, ColorGray, useColor))
	}
	return b.String()
}

func branch(last bool) string {
	if last {
		return "└─ "
	}
	return "├─ "
}

func indent(last bool) string {
	if last {
		return "   "
	}
	return "│  "
}
