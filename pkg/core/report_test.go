package core

import (
	"errors"
	"strings"
	"testing"
)

func TestReportChanged(t *testing.T) {
	r := &Report{}
	if r.Changed() {
		t.Error("Empty report must not be Changed")
	}

	r.AddDir()
	if !r.Changed() {
		t.Error("Report with a created dir must be Changed")
	}

	r = &Report{}
	r.AddRepair()
	if !r.Changed() {
		t.Error("Report with a repaired file must be Changed")
	}

	r = &Report{}
	r.Skip("FieldLog.csv", 3, errors.New("bad row"))
	if r.Changed() {
		t.Error("Skipped rows alone must not force a commit")
	}
}

func TestReportStageDedup(t *testing.T) {
	r := &Report{}
	r.Stage("a/b.csv")
	r.Stage("c/d.yaml")
	r.Stage("a/b.csv")

	staged := r.Staged()
	if len(staged) != 2 {
		t.Fatalf("Staged() = %v, want 2 unique paths", staged)
	}
	if staged[0] != "a/b.csv" || staged[1] != "c/d.yaml" {
		t.Errorf("Staged() order = %v", staged)
	}
}

func TestRowIssueString(t *testing.T) {
	i := RowIssue{File: "FieldLog.csv", Row: 3, Reason: "missing Sensor"}
	if got := i.String(); got != "FieldLog.csv (row 3): missing Sensor" {
		t.Errorf("String() = %q", got)
	}

	i = RowIssue{File: "FieldLog.csv", Reason: "empty"}
	if got := i.String(); strings.Contains(got, "row") {
		t.Errorf("File-scoped issue must not mention a row: %q", got)
	}
}

func TestReportSummary(t *testing.T) {
	r := &Report{}
	r.AddDir()
	r.AddDir()
	r.AddFile()
	r.Skip("x.csv", 1, errors.New("bad"))

	want := "2 dirs created, 1 files created, 0 files repaired, 1 rows skipped"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
