package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI returns the habitlog binary from HABITLOG_BIN_DIR, or builds one
func buildCLI(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("HABITLOG_BIN_DIR"); dir != "" {
		return filepath.Join(dir, "habitlog")
	}

	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not found; set HABITLOG_BIN_DIR to run")
	}
	bin := filepath.Join(t.TempDir(), "habitlog")
	out, err := exec.Command(goBin, "build", "-o", bin, ".").CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build habitlog: %v\n%s", err, out)
	}
	return bin
}

func isolatedEnv(home string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "HABITLOG_") {
			continue
		}
		env = append(env, e)
	}
	return append(env, "HOME="+home, "HABITLOG_TIMEZONE=UTC")
}

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}
	bin := buildCLI(t)

	home := t.TempDir()
	env := isolatedEnv(home)
	base := []string{
		"--db", filepath.Join(home, "data", "habitlog.db"),
		"--config", filepath.Join(home, "config.yaml"),
	}

	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command(bin, append(append([]string{}, base...), args...)...)
		cmd.Env = env
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("habitlog %v failed: %v\nOutput: %s", args, err, out)
		}
		return string(out)
	}
	expect := func(out, want string) {
		t.Helper()
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	expect(run("init"), "Initialized habitlog storage")
	expect(run("habit", "add", "Reading", "--goal", "daily"), "Added habit 1: Reading")
	expect(run("log", "add", "1", "30", "--note", "chapter 1"), "Logged 30 min of Reading")
	expect(run("summary"), "Best habit:      Reading (30 min)")
	expect(run("streak", "1"), "Reading: 1 day(s)")
	expect(run("backup", "create"), "Backup created: habitlog-")
	expect(run("doctor"), "All diagnostics passed!")
	expect(run("metrics"), "habitlog_store_operations_total")

	// errors go to stderr with exit status 1
	cmd := exec.Command(bin, append(append([]string{}, base...), "log", "add", "99", "10")...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("log add for a missing habit: err = %v, want exit status 1", err)
	}
	expect(string(out), "Error: habit 99: not found")

	expect(run("habit", "delete", "1", "--yes"), "Deleted habit 1: Reading")
	expect(run("habit", "list"), "No habits yet")
}
