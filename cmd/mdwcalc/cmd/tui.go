package cmd

import (
	"fmt"
	"os"

	"github.com/msto63/mdwcalc/internal/tui"
	"github.com/msto63/mdwcalc/pkg/core/logging"
	"github.com/spf13/cobra"
)

var tuiInline bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet den interaktiven Rechner",
	Long: `Startet den Rechner als Terminal User Interface (TUI).

Bedienung:
  0-9 .     - Ziffern und Dezimalpunkt
  + - * /   - Operatoren
  Enter, =  - Ergebnis
  Backspace - Letzte Ziffer löschen (CE)
  c, Esc    - Alles löschen (C)
  n         - Vorzeichen wechseln
  Pfeile    - Taste auswählen, Leertaste drückt sie
  t         - Hell/Dunkel umschalten
  q         - Beenden`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiInline, "inline", false, "Ohne Alternate Screen darstellen")
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger := logging.New("tui")

	store, err := openStore()
	if err != nil {
		// the calculator works without persisted preferences
		logger.Warn("Preferences unavailable", "error", err)
	} else {
		defer store.Close()
	}

	err = tui.Run(tui.Config{
		Store:    store,
		Logger:   logger,
		Inline:   tuiInline || appConfig.TUI.Inline,
		ShowHelp: appConfig.TUI.ShowHelp,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI Fehler: %v\n", err)
		return err
	}

	return nil
}
