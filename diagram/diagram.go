// Package diagram renders circuits as wire-grid text. Operations label
// their wires through the diagram-info hook; single-rune markers (controls,
// swap crosses) sit inline on the wire and anything longer gets a box.
package diagram

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qcirc/circuit"
	"qcirc/quantum"
)

// Options configures rendering.
type Options struct {
	// UseUnicode selects box-drawing glyphs; ASCII otherwise.
	UseUnicode bool
	// Precision for numeric exponents and angles.
	Precision int
	// Plain disables lipgloss styling.
	Plain bool
}

// DefaultOptions renders unicode with styling.
func DefaultOptions() Options {
	return Options{UseUnicode: true, Precision: 3}
}

type glyphs struct {
	wire, vert, cross          string
	boxTL, boxTR, boxBL, boxBR string
	boxH, boxL, boxR           string
}

var unicodeGlyphs = glyphs{
	wire: "─", vert: "│", cross: "┼",
	boxTL: "┌", boxTR: "┐", boxBL: "└", boxBR: "┘",
	boxH: "─", boxL: "┤", boxR: "├",
}

var asciiGlyphs = glyphs{
	wire: "-", vert: "|", cross: "+",
	boxTL: "+", boxTR: "+", boxBL: "+", boxBR: "+",
	boxH: "-", boxL: "[", boxR: "]",
}

// asciiMarkers maps wire markers onto the ASCII charset.
var asciiMarkers = map[string]string{"●": "@", "×": "x", "⊕": "O"}

type styles struct {
	gate  lipgloss.Style
	label lipgloss.Style
}

func newStyles(plain bool) styles {
	if plain {
		return styles{gate: lipgloss.NewStyle(), label: lipgloss.NewStyle()}
	}
	return styles{
		gate:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#73daca")),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
	}
}

// cell is one qubit's slice of one step.
type cell struct {
	symbol      string // wire symbol, empty for a bare wire
	boxed       bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// Render draws the circuit as a three-lines-per-qubit grid.
func Render(c *circuit.Circuit, opts Options) string {
	qubits := c.Qubits()
	if len(qubits) == 0 {
		return ""
	}
	g := unicodeGlyphs
	if !opts.UseUnicode {
		g = asciiGlyphs
	}
	st := newStyles(opts.Plain)
	args := quantum.DiagramArgs{Precision: opts.Precision, UseUnicode: opts.UseUnicode}

	rowOf := make(map[quantum.Qid]int, len(qubits))
	for i, q := range qubits {
		rowOf[q] = i
	}

	grid := make([][]cell, c.NumSteps())
	widths := make([]int, c.NumSteps())
	for s := 0; s < c.NumSteps(); s++ {
		grid[s] = make([]cell, len(qubits))
		widths[s] = 3
		for _, op := range c.StepOperations(s) {
			placeOp(grid[s], rowOf, op, args, opts)
		}
		for _, cl := range grid[s] {
			if w := cellWidth(cl); w > widths[s] {
				widths[s] = w
			}
		}
	}

	labelW := 0
	labels := make([]string, len(qubits))
	for i, q := range qubits {
		labels[i] = q.String() + ": "
		if len(labels[i]) > labelW {
			labelW = len(labels[i])
		}
	}

	var sb strings.Builder
	for row := range qubits {
		top := strings.Repeat(" ", labelW)
		mid := st.label.Render(fmt.Sprintf("%-*s", labelW, labels[row]))
		bot := strings.Repeat(" ", labelW)
		for s := 0; s < c.NumSteps(); s++ {
			t, m, b := renderCell(grid[s][row], widths[s], g, st)
			top += t
			mid += m
			bot += b
		}
		sb.WriteString(strings.TrimRight(top, " ") + "\n")
		sb.WriteString(strings.TrimRight(mid, " ") + "\n")
		sb.WriteString(strings.TrimRight(bot, " ") + "\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// placeOp fills the cells an operation touches, plus the pass-through rows
// a connected operation spans.
func placeOp(cells []cell, rowOf map[quantum.Qid]int, op quantum.Operation, args quantum.DiagramArgs, opts Options) {
	info := quantum.GetDiagramInfo(op, args)
	opQubits := op.Qubits()

	symbols := make([]string, len(opQubits))
	for i := range opQubits {
		s := "?"
		if i < len(info.WireSymbols) {
			s = info.WireSymbols[i]
		}
		if !opts.UseUnicode {
			if a, ok := asciiMarkers[s]; ok {
				s = a
			}
		}
		symbols[i] = s
	}
	if info.Exponent != "" {
		symbols[len(symbols)-1] += "^" + info.Exponent
	}

	minRow, maxRow := len(cells), -1
	for _, q := range opQubits {
		r := rowOf[q]
		if r < minRow {
			minRow = r
		}
		if r > maxRow {
			maxRow = r
		}
	}

	occupied := make(map[int]bool, len(opQubits))
	for i, q := range opQubits {
		r := rowOf[q]
		occupied[r] = true
		cells[r] = cell{
			symbol: symbols[i],
			boxed:  !isMarker(symbols[i]),
		}
		if info.Connected {
			cells[r].vertAbove = r > minRow
			cells[r].vertBelow = r < maxRow
		}
	}
	if info.Connected {
		for r := minRow + 1; r < maxRow; r++ {
			if !occupied[r] {
				cells[r] = cell{passThrough: true}
			}
		}
	}
}

// isMarker reports whether a symbol sits directly on the wire instead of in
// a box.
func isMarker(s string) bool {
	switch s {
	case "●", "×", "⊕", "@", "x", "O":
		return true
	}
	return false
}

func cellWidth(c cell) int {
	n := len([]rune(c.symbol))
	if c.boxed {
		return n + 4
	}
	if c.symbol != "" {
		return n + 2
	}
	return 3
}

func renderCell(c cell, w int, g glyphs, st styles) (top, mid, bot string) {
	spaces := strings.Repeat(" ", w)
	half := (w - 1) / 2
	vertRow := strings.Repeat(" ", half) + g.vert + strings.Repeat(" ", w-half-1)

	switch {
	case c.boxed:
		n := len([]rune(c.symbol))
		boxW := n + 2
		margin := (w - boxW) / 2
		right := w - margin - boxW
		top = strings.Repeat(" ", margin) + g.boxTL + strings.Repeat(g.boxH, n) + g.boxTR + strings.Repeat(" ", right)
		mid = strings.Repeat(g.wire, margin) + g.boxL + st.gate.Render(c.symbol) + g.boxR + strings.Repeat(g.wire, right)
		bot = strings.Repeat(" ", margin) + g.boxBL + strings.Repeat(g.boxH, n) + g.boxBR + strings.Repeat(" ", right)

	case c.symbol != "":
		dashL := half
		dashR := w - dashL - len([]rune(c.symbol))
		mid = strings.Repeat(g.wire, dashL) + st.gate.Render(c.symbol) + strings.Repeat(g.wire, dashR)
		top, bot = spaces, spaces
		if c.vertAbove {
			top = vertRow
		}
		if c.vertBelow {
			bot = vertRow
		}

	case c.passThrough:
		top, bot = vertRow, vertRow
		mid = strings.Repeat(g.wire, half) + g.cross + strings.Repeat(g.wire, w-half-1)

	default:
		top, bot = spaces, spaces
		mid = strings.Repeat(g.wire, w)
	}
	return
}
