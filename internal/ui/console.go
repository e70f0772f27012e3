// Package ui renders studyhub results for the terminal with colorized
// badges and tables.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR DEFINITIONS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	// Text colors
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)

	neonBlue = color.New(color.FgHiCyan, color.Bold)
)

// StartupInfo is what PrintStartupInfo reports about the wiring.
type StartupInfo struct {
	Backend     string
	Credentials []string // display labels, secrets already masked
	Models      []string
	MaxAttempts int
}

// ══════════════════════════════════════════════════════════════════════════════
// STATUS LINES
// ══════════════════════════════════════════════════════════════════════════════

// PrintStartupInfo prints the active backend, credentials and model roster.
// Format: [STUDYHUB] Backend: sdk | Credentials: 2 | Models: 4 | Attempts: 3
func PrintStartupInfo(w io.Writer, info StartupInfo) {
	infoBadge.Fprint(w, "[STUDYHUB]")
	fmt.Fprint(w, " Backend: ")
	accentText.Fprint(w, info.Backend)
	fmt.Fprint(w, " | Credentials: ")
	if len(info.Credentials) > 0 {
		successText.Fprintf(w, "%d", len(info.Credentials))
	} else {
		errorText.Fprint(w, "0")
	}
	fmt.Fprint(w, " | Models: ")
	neonBlue.Fprintf(w, "%d", len(info.Models))
	fmt.Fprint(w, " | Attempts: ")
	neonBlue.Fprintf(w, "%d\n", info.MaxAttempts)

	for _, c := range info.Credentials {
		mutedText.Fprintf(w, "  key  %s\n", c)
	}
	if len(info.Models) > 0 {
		mutedText.Fprintf(w, "  roster  %s\n", strings.Join(info.Models, ", "))
	}
	if len(info.Credentials) == 0 {
		PrintWarning(w, "no API keys configured; set GEMINI_API_KEY or ALT_KEY")
	}
}

// PrintSuccess prints a completed tool run.
// Format: [ OK ] message
func PrintSuccess(w io.Writer, msg string) {
	successBadge.Fprint(w, " OK ")
	fmt.Fprint(w, " ")
	successText.Fprintln(w, msg)
}

// PrintFallback prints a notice that a tool returned its placeholder result.
// Format: ⚠️ [FALLBACK] tool: generation unavailable, showing placeholder
func PrintFallback(w io.Writer, tool string) {
	fmt.Fprint(w, "⚠️  ")
	warningBadge.Fprint(w, "[FALLBACK]")
	fmt.Fprint(w, " ")
	warningText.Fprintf(w, "%s: generation unavailable, showing placeholder\n", tool)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(w io.Writer, msg string) {
	warningBadge.Fprint(w, "[WARN]")
	fmt.Fprint(w, " ")
	warningText.Fprintln(w, msg)
}

// PrintFailure prints a failure message such as the dispatcher's failure text.
// Format: [ FAILED ] message
func PrintFailure(w io.Writer, msg string) {
	errorBadge.Fprint(w, " FAILED ")
	fmt.Fprint(w, " ")
	errorText.Fprintln(w, msg)
}

// PrintCacheStats prints result cache counters.
// Format: ⚡ CACHE | hits:N misses:N entries:N
func PrintCacheStats(w io.Writer, hits, misses int64, size int) {
	neonBlue.Fprint(w, "⚡ CACHE ")
	fmt.Fprint(w, "| ")
	mutedText.Fprintf(w, "hits:%d misses:%d entries:%d\n", hits, misses, size)
}

// PrintSection prints a titled block of free text.
func PrintSection(w io.Writer, title, body string) {
	infoText.Fprintf(w, "── %s ", title)
	mutedText.Fprintln(w, strings.Repeat("─", max(0, 60-len(title))))
	fmt.Fprintln(w, strings.TrimSpace(body))
	fmt.Fprintln(w)
}
