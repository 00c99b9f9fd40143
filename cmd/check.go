package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/icon"
	"github.com/squiggle-cli/squiggle/style"
)

// CheckDependencies exits when the chosen playback host needs a binary that is not on PATH.
// Only the mpv host spawns an external program.
func CheckDependencies(playerName string) {
	if playerName != "mpv" {
		return
	}

	if _, err := exec.LookPath("mpv"); err != nil {
		printMissingDependencyError("mpv")
		os.Exit(1)
	}
}

func installHint(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The '%s' player needs '%s' on your PATH.", dep, dep))

	suggestion := fmt.Sprintf("\n\nOr pick another host with %s", style.Bold("--player local"))
	if hint := installHint(dep); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s%s",
			style.New().Foreground(style.AccentColor).Bold(true).Render(hint),
			suggestion,
		)
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
