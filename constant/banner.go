package constant

import _ "embed"

// Logo is printed above the root command's help.
//
//go:embed ascii.txt
var Logo string

// GOOS values the CLI special-cases when suggesting how to install mpv.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
