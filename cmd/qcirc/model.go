package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"qcirc/circuit"
	"qcirc/diagram"
	"qcirc/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusInputParam
)

// Model holds the TUI application state.
type Model struct {
	circ        *circuit.Circuit
	numQubits   int
	cursorQubit int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string
	saveFile    string
	log         zerolog.Logger

	// Menu state
	menuCat  int
	menuItem int

	// Pending placement state
	pending     *menuItem
	targetQubit int
	paramInput  string
}

func initialModel(numQubits int, saveFile string, log zerolog.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circ:      &circuit.Circuit{},
		numQubits: numQubits,
		saveFile:  saveFile,
		log:       log,
	}
	m.qasmEditor = ta
	m.syncQASM()
	return m
}

// syncQASM refreshes the editor from the circuit.
func (m *Model) syncQASM() {
	qasm, err := m.circ.ToQASM()
	if err != nil {
		m.statusMsg = fmt.Sprintf("QASM error: %v", err)
		m.log.Warn().Err(err).Msg("qasm export failed")
		return
	}
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput rebuilds the circuit from the editor if it changed.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	c, err := circuit.ParseQASM(qasm)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Parse error: %v", err)
		return
	}
	m.circ = c
	m.lastQASM = qasm
	m.statusMsg = ""
	for _, q := range c.Qubits() {
		if lq, ok := q.(quantum.LineQubit); ok && int(lq) >= m.numQubits {
			m.numQubits = int(lq) + 1
		}
	}
}

// placeGate appends the pending gate at the cursor.
func (m *Model) placeGate(item menuItem, theta float64) {
	var op quantum.Operation
	var err error
	switch {
	case item.build == nil:
		key := fmt.Sprintf("c[%d]", m.cursorQubit)
		op, err = quantum.On(quantum.Measure(key, 1), quantum.LineQubit(m.cursorQubit))
	case item.needsTarget:
		op, err = quantum.On(item.build(theta),
			quantum.LineQubit(m.cursorQubit), quantum.LineQubit(m.targetQubit))
	default:
		op, err = quantum.On(item.build(theta), quantum.LineQubit(m.cursorQubit))
	}
	if err == nil {
		err = m.circ.Append(op)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot place %s: %v", item.name, err)
		m.log.Warn().Err(err).Str("gate", item.name).Msg("placement failed")
		return
	}
	m.log.Info().Str("gate", item.name).Int("qubit", m.cursorQubit).Msg("gate placed")
	m.syncQASM()
}

// commitPending finishes target/parameter collection and places the gate.
func (m *Model) commitPending() {
	item := *m.pending
	theta := 0.0
	if item.needsParam {
		v, ok := quantum.ParsePiExpr(m.paramInput)
		if !ok {
			m.statusMsg = fmt.Sprintf("Bad parameter %q", m.paramInput)
			m.focus = focusCircuit
			m.pending = nil
			return
		}
		theta = v
	}
	m.placeGate(item, theta)
	m.pending = nil
	m.focus = focusCircuit
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		m.qasmEditor.SetHeight(max(msg.Height-12, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circ = &circuit.Circuit{}
				m.syncQASM()
			case "ctrl+s":
				if err := os.WriteFile(m.saveFile, []byte(m.qasmEditor.Value()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved " + m.saveFile
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.numQubits-1 {
					m.cursorQubit++
				}
			case "+", "=":
				m.numQubits++
			case "-":
				if m.numQubits > 1 {
					m.numQubits--
					m.cursorQubit = min(m.cursorQubit, m.numQubits-1)
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pending = &item
				switch {
				case item.needsTarget:
					m.targetQubit = (m.cursorQubit + 1) % m.numQubits
					m.focus = focusSelectTarget
				case item.needsParam:
					m.paramInput = ""
					m.focus = focusInputParam
				default:
					m.commitPending()
				}
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.pending = nil
				m.focus = focusCircuit
			case "up", "k":
				if m.targetQubit > 0 {
					m.targetQubit--
				}
			case "down", "j":
				if m.targetQubit < m.numQubits-1 {
					m.targetQubit++
				}
			case "enter":
				if m.targetQubit == m.cursorQubit {
					m.statusMsg = "Target must differ from control"
					break
				}
				if m.pending.needsParam {
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}
				m.commitPending()
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.pending = nil
				m.focus = focusCircuit
			case "enter":
				m.commitPending()
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' ||
						ch == 'p' || ch == 'i' || ch == '*' || ch == '/' {
						m.paramInput += key
					}
				}
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4

	circuitPanel := m.renderCircuitPanel(circuitWidth)
	qasmPanel := m.renderQASMPanel(qasmWidth)
	controlsPanel := m.renderControlsPanel()

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = lipgloss.JoinVertical(lipgloss.Left, frame, m.renderMenu())
	}
	if m.focus == focusInputParam {
		frame = lipgloss.JoinVertical(lipgloss.Left, frame, m.renderParamInput())
	}

	return frame
}

func (m Model) renderCircuitPanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	sb.WriteString(diagram.Render(m.padded(), diagram.DefaultOptions()))
	sb.WriteString("\n")

	// Wire cursor
	for q := 0; q < m.numQubits; q++ {
		marker := "  "
		switch {
		case m.focus == focusSelectTarget && q == m.targetQubit:
			marker = cursorStyle.Render("▸t")
		case q == m.cursorQubit:
			marker = cursorStyle.Render("▸ ")
		}
		fmt.Fprintf(&sb, "%s q[%d]\n", marker, q)
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderProbabilities())

	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.statusMsg))
	}
	return circuitStyle.Width(width).Render(sb.String())
}

// padded extends the circuit so idle wires still render.
func (m Model) padded() *circuit.Circuit {
	c := &circuit.Circuit{}
	for _, op := range m.circ.AllOperations() {
		if err := c.Append(op); err != nil {
			m.log.Warn().Err(err).Msg("rebuilding circuit for render")
		}
	}
	for q := 0; q < m.numQubits; q++ {
		if _, ok := c.OperationAt(0, quantum.LineQubit(q)); !ok {
			op, err := quantum.On(quantum.NewIdentity(1), quantum.LineQubit(q))
			if err == nil {
				_ = c.InsertAt(0, op)
			}
		}
	}
	return c
}

func (m Model) renderProbabilities() string {
	var sb strings.Builder
	sb.WriteString(probLabelStyle.Render("P(|1⟩):"))
	sb.WriteString(" ")
	for q, p := range simulate(m.circ.AllOperations(), m.numQubits) {
		fmt.Fprintf(&sb, "q[%d]=%.3f  ", q, p.Prob1)
	}
	return sb.String()
}

func (m Model) renderQASMPanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("OpenQASM 2.0"))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	return qasmStyle.Width(width).Render(sb.String())
}

func (m Model) renderControlsPanel() string {
	hints := []string{
		"a add gate", "↑↓ move", "+/- wires", "tab qasm",
		"ctrl+s save", "ctrl+r reset", "q quit",
	}
	return controlsStyle.Render(dimStyle.Render(strings.Join(hints, "  ")))
}

// renderMenu renders the gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(menuSelectedStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParam {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// renderParamInput renders the parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Value: %s_", m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return menuBorderStyle.Render(sb.String())
}
