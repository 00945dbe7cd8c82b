package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command against a config rooted in a temp dir
func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(dataDir, "mdwcalc.toml")
	cfg := "[general]\ndata_dir = \"" + filepath.ToSlash(dataDir) + "\"\n\n[preferences]\nbackend = \"json\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	// flag values survive between executions
	evalTrace, evalJSON = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"chain", []string{"7", "+", "3", "*", "2", "="}, "20\n"},
		{"multi digit", []string{"12.5", "+", "0.5", "="}, "13\n"},
		{"float sum", []string{"0.1", "+", "0.2", "="}, "0.30000000000000004\n"},
		{"division by zero", []string{"1", "/", "0", "="}, "Infinity\n"},
		{"pending operator", []string{"9", "-"}, "9-\n0\n"},
		{"aliases", []string{"5", "x", "2", "enter"}, "10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, t.TempDir(), append([]string{"eval"}, tt.args...)...)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalUnknownButton(t *testing.T) {
	if _, err := execute(t, t.TempDir(), "eval", "7", "sqrt"); err == nil {
		t.Error("expected error for unknown button")
	}
}

func TestEvalJSON(t *testing.T) {
	out, err := execute(t, t.TempDir(), "eval", "--json", "--trace", "2", "+", "3", "=")
	if err != nil {
		t.Fatal(err)
	}

	var result evalResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if result.Live != "5" {
		t.Errorf("live = %q, want 5", result.Live)
	}
	if len(result.Steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(result.Steps))
	}
	if step := result.Steps[1]; step.Event != "operator(add)" || step.History != "2+" {
		t.Errorf("step 1 = %+v", step)
	}
}

func TestTheme(t *testing.T) {
	dir := t.TempDir()

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "Theme: light"},
		{[]string{"theme", "toggle"}, "Theme: dark"},
		{[]string{"theme", "show"}, "Theme: dark"},
		{[]string{"theme", "light"}, "Theme: light"},
		{[]string{"theme", "toggle"}, "Theme: dark"},
	}

	for _, step := range steps {
		out, err := execute(t, dir, step.args...)
		if err != nil {
			t.Fatalf("%v: %v", step.args, err)
		}
		if strings.TrimSpace(out) != step.want {
			t.Errorf("%v: output = %q, want %q", step.args, out, step.want)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "preferences.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"darkMode": true`) {
		t.Errorf("stored preferences = %s", data)
	}
}

func TestThemeRejectsUnknownArgument(t *testing.T) {
	if _, err := execute(t, t.TempDir(), "theme", "sepia"); err == nil {
		t.Error("expected error")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "mDW Rechner v") {
		t.Errorf("output = %q", out)
	}
}
