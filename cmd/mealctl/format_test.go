package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout replaces os.Stdout with a pipe, calls f, then returns the
// captured output and restores os.Stdout. It is NOT safe for parallel use
// because os.Stdout is a package-level variable.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	f()

	w.Close()
	<-done
	os.Stdout = orig
	r.Close()
	return buf.String()
}

func TestFormatJSON(t *testing.T) {
	type sample struct {
		ID       int64  `json:"id"`
		MealType string `json:"meal_type"`
	}
	v := sample{ID: 42, MealType: "lunch"}

	got := captureStdout(t, func() { formatJSON(v) })

	var out sample
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, got)
	}
	if out.ID != 42 {
		t.Errorf("id: got %d, want 42", out.ID)
	}
	if out.MealType != "lunch" {
		t.Errorf("meal_type: got %q, want %q", out.MealType, "lunch")
	}
	if !strings.Contains(got, "\n") {
		t.Errorf("expected indented JSON but got: %s", got)
	}
}

func TestFormatTable(t *testing.T) {
	headers := []string{"ID", "MEAL", "COUNT"}
	rows := [][]string{
		{"1", "lunch", "412"},
		{"2", "night snack", "7"},
	}

	got := captureStdout(t, func() { formatTable(headers, rows) })
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	// Header, separator, and one line per row.
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	for _, h := range headers {
		if !strings.Contains(lines[0], h) {
			t.Errorf("header line missing %q: %s", h, lines[0])
		}
	}

	sep := strings.TrimSpace(lines[1])
	for _, ch := range sep {
		if ch != '-' && ch != ' ' {
			t.Errorf("separator contains unexpected char %q: %s", ch, lines[1])
		}
	}

	if !strings.Contains(lines[3], "night snack") {
		t.Errorf("row 1 missing meal type: %s", lines[3])
	}

	// Columns pad to the widest cell, so both data rows start their
	// MEAL column at the same offset.
	if strings.Index(lines[2], "lunch") != strings.Index(lines[3], "night snack") {
		t.Errorf("columns not aligned:\n%s\n%s", lines[2], lines[3])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	got := captureStdout(t, func() { formatTable([]string{"ID", "MEAL"}, nil) })
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and separator only, got %d lines:\n%s", len(lines), got)
	}
}

func TestOutputQuiet(t *testing.T) {
	origFmt := flagFmt
	flagFmt = "quiet"
	defer func() { flagFmt = origFmt }()

	got := captureStdout(t, func() { output(map[string]any{"id": 7}, "7") })
	if strings.TrimSpace(got) != "7" {
		t.Errorf("quiet output = %q, want %q", strings.TrimSpace(got), "7")
	}
}
