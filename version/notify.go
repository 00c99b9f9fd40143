package version

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/style"
)

// Notify writes a short notice to w when a newer release than constant.Version exists.
// Lookup failures are logged and otherwise ignored.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	latest, err := Latest()
	if err != nil {
		log.Component("version").WithError(err).Debug("release lookup failed")
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/squiggle-cli/squiggle/releases/tag/v"+latest),
	)
}
