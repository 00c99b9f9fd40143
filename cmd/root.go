// Package cmd implements the command-line interface for squiggle.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/icon"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/player"
	"github.com/squiggle-cli/squiggle/style"
	"github.com/squiggle-cli/squiggle/tui"
	"github.com/squiggle-cli/squiggle/version"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("player", "P", "", "Playback host to drive: "+strings.Join(player.Available, ", "))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.Flags().Lookup("player")))

	rootCmd.Flags().StringP("remote", "R", "", "Websocket URL of the remote playback host")
	lo.Must0(viper.BindPFlag(key.PlayerRemoteURL, rootCmd.Flags().Lookup("remote")))

	rootCmd.Flags().BoolP("still", "s", false, "Draw a flat, unanimated wave")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.OutOrStdout())
	})
}

// rootCmd plays a target and shows the squiggly sliders for it.
var rootCmd = &cobra.Command{
	Use:   constant.Squiggle + " [file or url]",
	Short: "A terminal media controller with an animated squiggly progress bar",
	Long: constant.Logo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - A terminal media controller with an animated squiggly progress bar"),
	Example: "  squiggle ~/music/track.mp3\n  squiggle --player remote --remote ws://10.0.0.2:8765/ws",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		name := viper.GetString(key.Player)
		target := ""
		if len(args) > 0 {
			target = args[0]
		}

		// mpv and local hosts have nothing to show without a target.
		if target == "" && name != "remote" {
			handleErr(cmd.Help())
			return
		}

		CheckDependencies(name)

		if lo.Must(cmd.Flags().GetBool("still")) {
			viper.Set(key.WaveAnimate, false)
		}

		host, err := player.New(name, viper.GetString(key.PlayerRemoteURL))
		handleErr(err)

		log.Component("cmd").WithField("player", name).WithField("target", target).Info("starting")
		handleErr(tui.Run(&tui.Options{
			Target: target,
			Player: host,
		}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
