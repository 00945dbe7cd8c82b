package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/msto63/mdwcalc/pkg/core/config"
	"github.com/msto63/mdwcalc/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "mdwcalc",
	Short: "mDW Rechner - Taschenrechner",
	Long: `mDW Rechner ist ein Taschenrechner mit vier Grundrechenarten,
Verkettung von links nach rechts und einer Verlaufszeile.

Befehle:
  tui      - Interaktiver Rechner im Terminal
  eval     - Tasten nacheinander drücken und Ergebnis ausgeben
  theme    - Hell/Dunkel-Einstellung anzeigen oder ändern
  serve    - Rechner per WebSocket bereitstellen`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/mdwcalc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads the configuration and the process-wide logging. The TUI owns
// the terminal, so it logs to file only.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logCfg := logging.DefaultLoggerConfig("")
	logCfg.Level = appConfig.General.LogLevel
	logCfg.Format = appConfig.General.LogFormat
	logCfg.Output = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	}

	logFile := appConfig.General.LogFile
	if cmd.Name() == tuiCmd.Name() {
		logCfg.Quiet = true
		if logFile == "" {
			logFile = filepath.Join(appConfig.General.DataDir, "logs", "tui.log")
		}
	}

	logCloser, err = logging.Configure(logCfg, logFile)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// openStore opens the configured preferences store
func openStore() (preferences.Store, error) {
	store, err := preferences.Open(appConfig.Preferences.Backend, appConfig.Preferences.Path)
	if err != nil {
		return nil, fmt.Errorf("preferences (%s): %w", appConfig.Preferences.Backend, err)
	}
	return store, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
