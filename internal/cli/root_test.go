// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyprompt/internal/form"
	"storyprompt/internal/prompt"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRoot()
	cmd.SetArgs(args)
	out := bytes.NewBuffer(nil)
	cmd.SetOut(out)
	cmd.SetErr(bytes.NewBuffer(nil))
	err := cmd.Execute()
	return out.String(), err
}

// stubTUI replaces runTUI for the duration of a test and records the
// controller it was started with.
func stubTUI(t *testing.T) *prompt.Inputs {
	t.Helper()
	got := new(prompt.Inputs)
	orig := runTUI
	runTUI = func(ctrl *form.Controller) error {
		*got = ctrl.Inputs()
		return nil
	}
	t.Cleanup(func() { runTUI = orig })
	return got
}

func TestRootCommands(t *testing.T) {
	cmd := NewRoot()
	if cmd.Use != "storyprompt" {
		t.Fatalf("Use: got %q", cmd.Use)
	}
	for _, name := range []string{"serve", "tui", "print"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s command", name)
		}
	}
}

func TestPrintDefaults(t *testing.T) {
	out, err := execute(t, "print")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != prompt.Assemble(prompt.Defaults())+"\n" {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintWithSet(t *testing.T) {
	out, err := execute(t, "print", "--set", "tone=urgent", "--set", "brandName=Acme")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	for _, want := range []string{"Tone: urgent.", "Brand: Acme (UAE / GCC)."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPrintWithInputsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.toml")
	if err := os.WriteFile(path, []byte("region = \"KSA\"\ncta = \"DM us\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "print", "--inputs", path, "--set", "cta=Book a call")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out, "(KSA)") {
		t.Error("region should come from the file")
	}
	if !strings.Contains(out, `"Book a call"`) {
		t.Error("--set should win over the file")
	}
}

func TestPrintErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"invalid tone", []string{"print", "--set", "tone=calm"}, prompt.ErrInvalidTone},
		{"unknown field", []string{"print", "--set", "headline=x"}, prompt.ErrUnknownField},
		{"missing file", []string{"print", "--inputs", "/nonexistent/story.yaml"}, os.ErrNotExist},
		{"extra args", []string{"print", "extra"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestPrintQR(t *testing.T) {
	out, err := execute(t, "print", "--qr")
	if err != nil {
		t.Fatalf("print --qr: %v", err)
	}
	if strings.Contains(out, "Create an action-oriented") {
		t.Error("--qr should print the code instead of the text")
	}
	if strings.Count(out, "\n") < 10 {
		t.Errorf("expected a multi-line QR block, got %q", out)
	}
}

func TestPrintQRTooLong(t *testing.T) {
	_, err := execute(t, "print", "--qr", "--set", "coreMessage="+strings.Repeat("x", 4000))
	if err == nil {
		t.Fatal("expected an error for an oversized prompt")
	}
}

func TestRootRunsTUI(t *testing.T) {
	got := stubTUI(t)

	if _, err := execute(t); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != prompt.Defaults() {
		t.Errorf("controller inputs: got %+v, want defaults", *got)
	}
}

func TestTUIPreloadsInputs(t *testing.T) {
	got := stubTUI(t)

	if _, err := execute(t, "tui", "--set", "memeStyle=drake meme", "--set", "tone=playful"); err != nil {
		t.Fatalf("tui: %v", err)
	}
	want := prompt.Defaults()
	want.MemeStyle = "drake meme"
	want.Tone = prompt.TonePlayful
	if *got != want {
		t.Errorf("controller inputs: got %+v, want %+v", *got, want)
	}
}

func TestTUIInvalidInputs(t *testing.T) {
	called := false
	orig := runTUI
	runTUI = func(*form.Controller) error {
		called = true
		return nil
	}
	defer func() { runTUI = orig }()

	if _, err := execute(t, "tui", "--set", "tone=loud"); !errors.Is(err, prompt.ErrInvalidTone) {
		t.Errorf("expected ErrInvalidTone, got %v", err)
	}
	if called {
		t.Error("the TUI should not start on invalid inputs")
	}
}

func TestServeConfigError(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "fast")

	_, err := execute(t, "serve")
	if err == nil || !strings.Contains(err.Error(), "RATE_LIMIT_RPS") {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	if code := exitCode(nil, &stderr); code != 0 || stderr.Len() != 0 {
		t.Errorf("nil error: got %d %q", code, stderr.String())
	}
	if code := exitCode(errors.New("boom"), &stderr); code != 1 || !strings.Contains(stderr.String(), "boom") {
		t.Errorf("error: got %d %q", code, stderr.String())
	}
}
