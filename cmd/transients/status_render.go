package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"transients/internal/transient"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const ansiReset = "\x1b[0m"

var statusStyles = [...]struct {
	tag   string
	color string
}{
	statusInfo:  {"INFO", "\x1b[34m"},
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

const statusLabelWidth = 18

// mismatchStatus grades a grid mismatch. Differing values may still be a
// rounding artefact; a grid of another length or one that is not increasing
// cannot be interpolated against epoch 0 at all.
func mismatchStatus(kind transient.MismatchKind) statusKind {
	if kind == transient.MismatchValues {
		return statusWarn
	}
	return statusError
}

// statusPrinter writes labelled status lines, colored when out is a terminal
// and NO_COLOR is unset.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, color: terminalColor(out)}
}

func (p *statusPrinter) header(title string) {
	line := "== " + strings.TrimSpace(title) + " =="
	p.println(statusInfo, line)
	p.println(statusInfo, strings.Repeat("-", len(line)))
}

func (p *statusPrinter) status(label string, kind statusKind, message string) {
	p.println(kind, formatStatus(label, kind, message))
}

// grid reports the wavelength grid check: a summary graded by the worst
// mismatch, then one line per mismatch.
func (p *statusPrinter) grid(mismatches []transient.Mismatch) {
	if len(mismatches) == 0 {
		p.status("Wavelength grid", statusOK, "all mangled spectra share one grid")
		return
	}
	worst := statusWarn
	counts := make(map[transient.MismatchKind]int)
	var order []transient.MismatchKind
	for _, m := range mismatches {
		worst = max(worst, mismatchStatus(m.Kind))
		if counts[m.Kind] == 0 {
			order = append(order, m.Kind)
		}
		counts[m.Kind]++
	}
	breakdown := make([]string, len(order))
	for i, kind := range order {
		breakdown[i] = fmt.Sprintf("%s %d", kind, counts[kind])
	}
	p.status("Wavelength grid", worst,
		fmt.Sprintf("%d mismatch(es) against epoch 0 (%s)", len(mismatches), strings.Join(breakdown, ", ")))
	for _, m := range mismatches {
		label := fmt.Sprintf("Epoch %d", m.Index)
		if m.File != "" {
			label += " (" + filepath.Base(m.File) + ")"
		}
		p.status(label, mismatchStatus(m.Kind), m.Kind.String()+": "+m.Detail)
	}
}

func (p *statusPrinter) println(kind statusKind, line string) {
	if p.color {
		line = statusStyles[kind].color + line + ansiReset
	}
	fmt.Fprintln(p.out, line)
}

func formatStatus(label string, kind statusKind, message string) string {
	text := "[" + statusStyles[kind].tag + "]"
	if message != "" {
		text += " " + message
	}
	return fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", text)
}

func terminalColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
