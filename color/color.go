// Package color provides a curated palette of terminal colors.
package color

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Of converts a blended colour into a truecolor lipgloss value.
func Of(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// Standard ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
)

// Bright variants used by CLI headings.
var (
	HiRed    = New("9")
	HiPurple = New("13")
)

var Orange = New("#ffb703")
