// Package tui provides the terminal user interface around the squiggly sliders.
package tui

type state int

const (
	loadingState state = iota
	playState
	errorState
)
