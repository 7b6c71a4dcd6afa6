package main

import (
	"math"

	"qcirc/quantum"
)

// menuItem is a single gate choice in the picker.
type menuItem struct {
	name        string
	symbol      string
	needsTarget bool
	needsParam  bool
	paramHint   string
	// build constructs the gate; theta is meaningful only when needsParam.
	build func(theta float64) quantum.Gate
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

func fixed(g quantum.Gate) func(float64) quantum.Gate {
	return func(float64) quantum.Gate { return g }
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", symbol: "H", build: fixed(quantum.H)},
			{name: "Pauli-X (NOT)", symbol: "X", build: fixed(quantum.X)},
			{name: "Pauli-Y", symbol: "Y", build: fixed(quantum.Y)},
			{name: "Pauli-Z", symbol: "Z", build: fixed(quantum.Z)},
			{name: "Identity", symbol: "I", build: fixed(quantum.NewIdentity(1))},
			{name: "Phase (S)", symbol: "S", build: fixed(quantum.S)},
			{name: "Phase Dagger (S†)", symbol: "S†", build: fixed(quantum.ZPow(quantum.Value(-0.5)))},
			{name: "T Gate", symbol: "T", build: fixed(quantum.T)},
			{name: "T Dagger (T†)", symbol: "T†", build: fixed(quantum.ZPow(quantum.Value(-0.25)))},
			{name: "√X", symbol: "√X", build: fixed(quantum.XPow(quantum.Value(0.5)))},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", symbol: "RX", needsParam: true, paramHint: "pi/2",
				build: func(theta float64) quantum.Gate { return quantum.Rx(quantum.Value(theta)) }},
			{name: "Rotate Y", symbol: "RY", needsParam: true, paramHint: "pi/2",
				build: func(theta float64) quantum.Gate { return quantum.Ry(quantum.Value(theta)) }},
			{name: "Rotate Z", symbol: "RZ", needsParam: true, paramHint: "pi/2",
				build: func(theta float64) quantum.Gate { return quantum.Rz(quantum.Value(theta)) }},
			{name: "Phase Shift", symbol: "P", needsParam: true, paramHint: "pi/4",
				build: func(theta float64) quantum.Gate { return quantum.ZPow(quantum.Value(theta / math.Pi)) }},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", symbol: "●─X", needsTarget: true, build: fixed(quantum.CNOT)},
			{name: "Controlled-Z", symbol: "●─●", needsTarget: true, build: fixed(quantum.CZ)},
			{name: "SWAP", symbol: "×─×", needsTarget: true, build: fixed(quantum.SWAP)},
			{name: "C-Phase (CU1)", symbol: "●─P", needsTarget: true, needsParam: true, paramHint: "pi/4",
				build: func(theta float64) quantum.Gate { return quantum.CZPow(quantum.Value(theta / math.Pi)) }},
		},
	},
	{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure", symbol: "M", build: nil},
		},
	},
}
