package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"qcirc/circuit"
	"qcirc/quantum"
)

func main() {
	qubits := flag.Int("qubits", 4, "initial number of wires")
	load := flag.String("load", "", "QASM file to load on startup")
	save := flag.String("save", "circuit.qasm", "file written by ctrl+s")
	logFile := flag.String("log", "", "write a debug log to this file")
	debug := flag.Bool("debug", false, "enable gate construction checks")
	flag.Parse()

	log := zerolog.Nop()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = zerolog.New(f).With().Timestamp().Logger()
		quantum.SetLogger(log)
	}
	quantum.SetDebugChecks(*debug)

	m := initialModel(*qubits, *save, log)
	if *load != "" {
		text, err := os.ReadFile(*load)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", *load, err)
			os.Exit(1)
		}
		c, err := circuit.ParseQASM(string(text))
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot parse %s: %v\n", *load, err)
			os.Exit(1)
		}
		m.circ = c
		for _, q := range c.Qubits() {
			if lq, ok := q.(quantum.LineQubit); ok && int(lq) >= m.numQubits {
				m.numQubits = int(lq) + 1
			}
		}
		m.syncQASM()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
