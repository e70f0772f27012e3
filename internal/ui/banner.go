package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Version is printed in the banner.
const Version = "v1.0.0"

// PrintBanner displays the startup banner.
func PrintBanner(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	hiCyan := color.New(color.FgHiCyan)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	cyan.Fprint(w, "║  ")
	hiCyan.Fprint(w, "╔═╗╔╦╗╦ ╦╔╦╗╦ ╦")
	magenta.Fprint(w, "  ╦ ╦╦ ╦╔╗ ")
	dim.Fprint(w, "                        ")
	cyan.Fprintln(w, "║")

	cyan.Fprint(w, "║  ")
	hiCyan.Fprint(w, "╚═╗ ║ ║ ║ ║║╚╦╝")
	magenta.Fprint(w, "  ╠═╣║ ║╠╩╗")
	dim.Fprint(w, "                        ")
	cyan.Fprintln(w, "║")

	cyan.Fprint(w, "║  ")
	hiCyan.Fprint(w, "╚═╝ ╩ ╚═╝═╩╝ ╩ ")
	magenta.Fprint(w, "  ╩ ╩╚═╝╚═╝")
	dim.Fprint(w, "                        ")
	cyan.Fprintln(w, "║")

	cyan.Fprintln(w, "╠══════════════════════════════════════════════════════╣")

	cyan.Fprint(w, "║  ")
	yellow.Fprint(w, "📚 AI STUDY TOOLS")
	dim.Fprint(w, "  │  ")
	magenta.Fprint(w, "KEY + MODEL FAILOVER")
	dim.Fprint(w, "  │  ")
	white.Fprint(w, Version)
	dim.Fprint(w, "  ")
	cyan.Fprintln(w, "║")

	cyan.Fprintln(w, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
}
