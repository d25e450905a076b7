package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/axlocate/axlocate/internal/axtree"
	"github.com/axlocate/axlocate/internal/dump"
)

func TestDumpCommand_Registered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "dump" {
			return
		}
	}
	t.Error("dump command not registered on root")
}

func TestDumpCommand_HasExpectedFlags(t *testing.T) {
	expectedFlags := []string{"tree", "app", "out", "max-depth"}
	for _, name := range expectedFlags {
		if dumpCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist on dump command", name)
		}
	}
}

func TestRunDumpSnapshotToStdout(t *testing.T) {
	setFlags(t, dumpCmd, map[string]string{
		"tree": writePlayerSnapshot(t),
	})

	out, err := captureStdout(t, func() error { return runDump(dumpCmd, nil) })
	if err != nil {
		t.Fatalf("runDump: unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "AXWindow label=\"Player\"\n") {
		t.Errorf("dump should start with the unindented root, got:\n%s", out)
	}
	if !strings.Contains(out, "\n  AXButton identifier=\"play\" label=\"Play\"\n") {
		t.Errorf("children should be indented one level, got:\n%s", out)
	}
	if !strings.Contains(out, "\n    AXTextField identifier=\"search\" class=\"UISearchField\"\n") {
		t.Errorf("grandchildren should be indented two levels, got:\n%s", out)
	}
}

func TestRunDumpToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "tree.txt")
	setFlags(t, dumpCmd, map[string]string{
		"tree": writePlayerSnapshot(t),
		"out":  outPath,
	})

	stdout, err := captureStdout(t, func() error { return runDump(dumpCmd, nil) })
	if err != nil {
		t.Fatalf("runDump: unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout with --out, got %q", stdout)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	// The written dump parses back into the tree it came from.
	parsed, err := dump.ParseString(string(data))
	if err != nil {
		t.Fatalf("dump output does not round-trip: %v", err)
	}
	if parsed.Role != "AXWindow" || len(parsed.Children) != 3 {
		t.Errorf("round-tripped tree lost structure: %+v", parsed)
	}
}

func TestRunDumpDepthCap(t *testing.T) {
	setFlags(t, dumpCmd, map[string]string{
		"tree":      writePlayerSnapshot(t),
		"max-depth": "1",
	})

	_, err := captureStdout(t, func() error { return runDump(dumpCmd, nil) })
	if !errors.Is(err, axtree.ErrTreeTooDeep) {
		t.Errorf("expected ErrTreeTooDeep, got %v", err)
	}
}

func TestRunDumpRequiresASource(t *testing.T) {
	if err := runDump(dumpCmd, nil); err == nil {
		t.Error("expected an error when neither --tree nor --app is given")
	}
}
