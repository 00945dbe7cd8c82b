package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [show|toggle|light|dark]",
	Short: "Zeigt oder ändert das Farbschema",
	Long: `Zeigt oder ändert das gespeicherte Farbschema (hell/dunkel).

Ohne Argument wird das aktuelle Schema angezeigt.

Beispiele:
  mdwcalc theme           # aktuelles Schema
  mdwcalc theme toggle    # umschalten
  mdwcalc theme dark      # dunkles Schema setzen`,
	ValidArgs: []string{"show", "toggle", "light", "dark"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	var theme preferences.Theme
	switch action {
	case "toggle":
		theme, err = preferences.Toggle(ctx, store)
	case "show":
		var p preferences.Preferences
		p, err = store.Load(ctx)
		theme = p.Theme()
	default:
		theme, err = preferences.ParseTheme(action)
		if err == nil {
			err = preferences.SetTheme(ctx, store, theme)
		}
	}
	if err != nil {
		return fmt.Errorf("theme %s: %w", action, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
	return nil
}
