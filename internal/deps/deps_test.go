package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
}

func TestCheckEmptyCommand(t *testing.T) {
	status := Check(Requirement{Name: "Empty"})
	if status.Available {
		t.Fatal("expected empty command to be unavailable")
	}
	if status.Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", status.Detail)
	}
}

func TestToolchainAndMissing(t *testing.T) {
	reqs := Toolchain("definitely-not-ffmpeg", "definitely-not-ffprobe")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 toolchain requirements, got %d", len(reqs))
	}

	statuses := CheckBinaries(reqs)
	missing := Missing(statuses)
	if len(missing) != 2 {
		t.Fatalf("expected both tools missing, got %d", len(missing))
	}

	optional := []Status{{Name: "Opt", Optional: true, Available: false}}
	if len(Missing(optional)) != 0 {
		t.Fatal("optional dependencies should not be reported as missing")
	}
}
