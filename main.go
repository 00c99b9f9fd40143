// Package main is the entry point for squiggle.
package main

import (
	"github.com/samber/lo"
	"github.com/squiggle-cli/squiggle/cmd"
	"github.com/squiggle-cli/squiggle/config"
	"github.com/squiggle-cli/squiggle/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
