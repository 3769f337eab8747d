package fieldvault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/fieldvault/pkg/core"
)

var testNode = core.Node{Name: "Narrabri", SensorPlatforms: []string{"GOBI", "HIRES", "M3M"}}

func TestEnsureSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SummaryName(testNode))

	created, err := EnsureSummary(path, testNode)
	if err != nil {
		t.Fatalf("EnsureSummary() error = %v", err)
	}
	if !created {
		t.Error("Expected created=true for missing table")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read table: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "Project,GOBI,HIRES,M3M" {
		t.Errorf("Header = %q, want %q", got, "Project,GOBI,HIRES,M3M")
	}

	// Second call is a no-op.
	created, err = EnsureSummary(path, testNode)
	if err != nil {
		t.Fatalf("EnsureSummary() second call error = %v", err)
	}
	if created {
		t.Error("Expected created=false for existing table")
	}
}

func TestLoadSummary(t *testing.T) {
	t.Run("parses rows", func(t *testing.T) {
		path := writeTempFile(t, "s.csv", "Project,GOBI,HIRES,M3M\nWheatTrial,TRUE,FALSE,TRUE\nBarley_2025,FALSE,TRUE,FALSE\n")

		rows, repaired, issues, err := LoadSummary(path, testNode, false)
		if err != nil {
			t.Fatalf("LoadSummary() error = %v", err)
		}
		if repaired {
			t.Error("Canonical table should not need repair")
		}
		if len(issues) != 0 {
			t.Errorf("Unexpected issues: %v", issues)
		}
		if len(rows) != 2 {
			t.Fatalf("Got %d rows, want 2", len(rows))
		}
		if !rows[0].Sensors["GOBI"] || rows[0].Sensors["HIRES"] || !rows[0].Sensors["M3M"] {
			t.Errorf("Row 0 flags = %v", rows[0].Sensors)
		}
		if got := rows[1].EnabledSensors(testNode); len(got) != 1 || got[0] != "HIRES" {
			t.Errorf("Row 1 enabled = %v, want [HIRES]", got)
		}
	})

	t.Run("repairs missing column", func(t *testing.T) {
		path := writeTempFile(t, "s.csv", "Project,GOBI,HIRES\nWheatTrial,TRUE,FALSE\n")

		rows, repaired, issues, err := LoadSummary(path, testNode, true)
		if err != nil {
			t.Fatalf("LoadSummary() error = %v", err)
		}
		if !repaired {
			t.Error("Expected repair for missing M3M column")
		}
		if len(issues) != 1 {
			t.Errorf("Expected one issue, got %v", issues)
		}
		if rows[0].Sensors["M3M"] {
			t.Error("Missing column should default to false")
		}

		// The file now carries the canonical header with a FALSE fill.
		data, _ := os.ReadFile(path)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if lines[0] != "Project,GOBI,HIRES,M3M" {
			t.Errorf("Repaired header = %q", lines[0])
		}
		if lines[1] != "WheatTrial,TRUE,FALSE,FALSE" {
			t.Errorf("Repaired row = %q", lines[1])
		}
	})

	t.Run("drops unknown column", func(t *testing.T) {
		path := writeTempFile(t, "s.csv", "Project,GOBI,HIRES,M3M,LIDAR\nWheatTrial,TRUE,FALSE,TRUE,TRUE\n")

		rows, repaired, issues, err := LoadSummary(path, testNode, true)
		if err != nil {
			t.Fatalf("LoadSummary() error = %v", err)
		}
		if !repaired {
			t.Error("Expected repair for unknown LIDAR column")
		}
		if len(issues) != 1 || !strings.Contains(issues[0].Reason, "LIDAR") {
			t.Errorf("Expected LIDAR drop issue, got %v", issues)
		}
		if _, ok := rows[0].Sensors["LIDAR"]; ok {
			t.Error("Unknown column must not survive the projection")
		}

		data, _ := os.ReadFile(path)
		if strings.Contains(string(data), "LIDAR") {
			t.Error("Repair must drop the unknown column from the file")
		}
	})

	t.Run("no repair without flag", func(t *testing.T) {
		content := "Project,GOBI,HIRES\nWheatTrial,TRUE,FALSE\n"
		path := writeTempFile(t, "s.csv", content)

		_, repaired, _, err := LoadSummary(path, testNode, false)
		if err != nil {
			t.Fatalf("LoadSummary() error = %v", err)
		}
		if repaired {
			t.Error("repair=false must not report a repair")
		}
		data, _ := os.ReadFile(path)
		if string(data) != content {
			t.Error("repair=false must not rewrite the file")
		}
	})

	t.Run("skips bad rows", func(t *testing.T) {
		path := writeTempFile(t, "s.csv", "Project,GOBI,HIRES,M3M\n,TRUE,FALSE,TRUE\nWheatTrial,maybe,FALSE,TRUE\nBarley_2025,TRUE,FALSE,FALSE\n")

		rows, _, issues, err := LoadSummary(path, testNode, false)
		if err != nil {
			t.Fatalf("LoadSummary() error = %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Barley_2025" {
			t.Errorf("Expected only the valid row, got %v", rows)
		}
		if len(issues) != 2 {
			t.Errorf("Expected 2 issues, got %v", issues)
		}
	})

	t.Run("rejects wrong first column", func(t *testing.T) {
		path := writeTempFile(t, "s.csv", "Name,GOBI\nX,TRUE\n")
		if _, _, _, err := LoadSummary(path, testNode, false); err == nil {
			t.Error("Expected error for missing Project column")
		}
	})
}
