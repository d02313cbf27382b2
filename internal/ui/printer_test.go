package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Step(1, 5, "edit version")
	p.Success("Committed")
	p.Notice("Tag and release are automated after merge.")
	p.Error("boom")
	p.Plain("would run: make update-version")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "[1/5] edit version") {
		t.Errorf("step line = %q, want banner with counter and name", lines[0])
	}
	if !strings.Contains(lines[1], "Committed") {
		t.Errorf("success line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "automated after merge") {
		t.Errorf("notice line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "boom") {
		t.Errorf("error line = %q", lines[3])
	}
	if lines[4] != "would run: make update-version" {
		t.Errorf("plain line = %q, want it verbatim and unstyled", lines[4])
	}
}
