package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/icon"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/settings"
	"github.com/squiggle-cli/squiggle/style"
	"github.com/squiggle-cli/squiggle/wave"
	"github.com/squiggle-cli/squiggle/where"
)

func settingsStore() *settings.File {
	return settings.NewFile(where.Settings(), viper.GetString(key.SettingsKey))
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect the slider look remembered between sessions",
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsShowCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	settingsShowCmd.SetOut(os.Stdout)
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the stored wavelength, amplitude and colour",
	Run: func(cmd *cobra.Command, args []string) {
		record, ok := settingsStore().Load()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(record))
			return
		}

		if !ok {
			cmd.Println(style.Faint("nothing stored, config defaults apply"))
			return
		}

		label := style.Fg(color.Blue)
		show := func(v any, set bool) string {
			if !set {
				return style.Faint("default")
			}
			return style.Fg(color.Yellow)(fmt.Sprint(v))
		}

		cmd.Printf("%s  %s\n", label("Wavelength:"), show(record.Wavelength, record.Wavelength > 0))
		cmd.Printf("%s   %s\n", label("Amplitude:"), show(record.Amplitude, record.Amplitude > 0))
		cmd.Printf("%s      %s\n", label("Colour:"), show(record.ActiveColor, record.ActiveColor != ""))
	},
}

func init() {
	settingsCmd.AddCommand(settingsResetCmd)
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored slider look",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(settingsStore().Reset())
		fmt.Printf(
			"%s reset slider settings\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	settingsCmd.AddCommand(settingsColorCmd)
}

var settingsColorCmd = &cobra.Command{
	Use:     "color [colour]",
	Short:   "Store the active colour of the progress bar",
	Example: "  squiggle settings color '#89b4fa'\n  squiggle settings color 'rgba(255, 0, 0, 0.8)'",
	Aliases: []string{"colour"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := wave.ParsePaint(args[0])
		handleErr(err)

		store := settingsStore()
		record, _ := store.Load()
		record.ActiveColor = args[0]
		handleErr(store.Save(record))

		fmt.Printf(
			"%s stored colour %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(args[0]),
		)
	},
}

func init() {
	settingsCmd.AddCommand(settingsSchemaCmd)
}

var settingsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the settings file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(settings.Schema()))
	},
}
