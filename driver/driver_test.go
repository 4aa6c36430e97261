package driver

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunCapturesStreams(t *testing.T) {
	out, err := Run("sh", []string{"-c", "echo out; echo err 1>&2"}, t.TempDir(), "", time.Second)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.Stdout != "out\n" {
		t.Errorf("stdout = %q, want %q", out.Stdout, "out\n")
	}
	if out.Stderr != "err\n" {
		t.Errorf("stderr = %q, want %q", out.Stderr, "err\n")
	}
	if out.ExitCode != 0 {
		t.Errorf("exit = %d, want 0", out.ExitCode)
	}
}

func TestRunFeedsStdin(t *testing.T) {
	out, err := Run("sh", []string{"-c", "cat"}, t.TempDir(), "hello\n", time.Second)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.Stdout != "hello\n" {
		t.Errorf("stdout = %q, want %q", out.Stdout, "hello\n")
	}
}

func TestRunNonzeroExitCarriesOutput(t *testing.T) {
	_, err := Run("sh", []string{"-c", "echo partial; echo broken 1>&2; exit 3"}, t.TempDir(), "", time.Second)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Outcome.ExitCode != 3 {
		t.Errorf("exit = %d, want 3", exitErr.Outcome.ExitCode)
	}
	if exitErr.Outcome.Stdout != "partial\n" {
		t.Errorf("stdout = %q, want %q", exitErr.Outcome.Stdout, "partial\n")
	}
	if !strings.Contains(exitErr.Outcome.Stderr, "broken") {
		t.Errorf("stderr = %q, want it to contain %q", exitErr.Outcome.Stderr, "broken")
	}
}

func TestRunTimeout(t *testing.T) {
	start := time.Now()
	_, err := Run("sh", []string{"-c", "sleep 10"}, t.TempDir(), "", 100*time.Millisecond)
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %v, want *TimeoutError", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("deadline took %v to fire", elapsed)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	_, err := Run("definitely-not-a-binary-on-path", nil, t.TempDir(), "", time.Second)
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v, want *SpawnError", err)
	}
}

func TestCompileNonzeroExit(t *testing.T) {
	err := Compile("sh", []string{"-c", "echo 'syntax error' 1>&2; exit 1"}, t.TempDir())
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if !strings.Contains(compileErr.Stderr, "syntax error") {
		t.Errorf("stderr = %q, want it to contain the diagnostic", compileErr.Stderr)
	}
}

func TestCompileOk(t *testing.T) {
	if err := Compile("sh", []string{"-c", "true"}, t.TempDir()); err != nil {
		t.Fatalf("Compile error: %v", err)
	}
}

func TestCompileSpawnFailure(t *testing.T) {
	err := Compile("definitely-not-a-binary-on-path", nil, t.TempDir())
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v, want *SpawnError", err)
	}
}
