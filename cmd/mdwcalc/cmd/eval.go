package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/msto63/mdwcalc/internal/calculator"
	"github.com/msto63/mdwcalc/internal/keypad"
	"github.com/msto63/mdwcalc/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	evalTrace bool
	evalJSON  bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [tasten...]",
	Short: "Drückt Tasten nacheinander und gibt das Ergebnis aus",
	Long: `Drückt die angegebenen Tasten in Reihenfolge auf einem frischen
Rechner und gibt die Anzeige aus.

Tasten: 0-9 . + - * / % = C CE +/-
Mehrstellige Zahlen wie 12.5 werden in einzelne Ziffern zerlegt.

Beispiele:
  mdwcalc eval 7 + 3 '*' 2 =          # 20
  mdwcalc eval --trace 0.1 + 0.2 =    # jeder Schritt
  mdwcalc eval --json 1 / 0 =         # {"live":"Infinity",...}`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalTrace, "trace", false, "Verlauf und Anzeige nach jeder Taste ausgeben")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "Ausgabe als JSON")
}

// evalStep is the display after one event
type evalStep struct {
	Event   string `json:"event"`
	Live    string `json:"live"`
	History string `json:"history"`
}

// evalResult is the JSON output of eval
type evalResult struct {
	Live    string     `json:"live"`
	History string     `json:"history"`
	Steps   []evalStep `json:"steps,omitempty"`
}

func runEval(cmd *cobra.Command, args []string) error {
	logger := logging.New("eval")

	events, err := keypad.Events(args...)
	if err != nil {
		return err
	}

	engine := calculator.New()
	result := evalResult{}
	for _, ev := range events {
		d := engine.Apply(ev)
		logger.Debug("Event applied", "event", ev.String(), "live", d.Live, "history", d.History)
		if evalTrace {
			result.Steps = append(result.Steps, evalStep{
				Event:   ev.String(),
				Live:    d.Live,
				History: d.History,
			})
		}
	}
	d := engine.Display()
	result.Live = d.Live
	result.History = d.History

	out := cmd.OutOrStdout()
	if evalJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, step := range result.Steps {
		fmt.Fprintf(out, "%-14s %12s | %s\n", step.Event, step.History, step.Live)
	}
	if d.History != "" {
		fmt.Fprintf(out, "%s\n", d.History)
	}
	fmt.Fprintln(out, d.Live)
	return nil
}
