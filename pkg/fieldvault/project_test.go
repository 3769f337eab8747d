package fieldvault

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/fieldvault/pkg/core"
)

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"WheatTrial", false},
		{"Barley_2025", false},
		{"a-b-c", false},
		{"", true},
		{"ab", true},                // too short
		{"2025Wheat", true},         // must start with a letter
		{"Wheat Trial", true},       // spaces
		{"Wheat/Trial", true},       // path separator
		{strings.Repeat("a", 64), false},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectName(%q) = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, core.ErrInvalidProjectName) {
				t.Errorf("Expected ErrInvalidProjectName, got %v", err)
			}
		})
	}
}

func TestSiteFolderName(t *testing.T) {
	controlled := true
	field := false

	tests := []struct {
		name string
		site Site
		want string
	}{
		{"no environment", Site{Name: "Narrabri", Year: 2025}, "2025Narrabri"},
		{"controlled", Site{Name: "Glasshouse", Year: 2025, ControlledEnvironment: &controlled}, "2025Glasshouse_C"},
		{"field", Site{Name: "Narrabri", Year: 2024, ControlledEnvironment: &field}, "2024Narrabri_F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.site.FolderName(); got != tt.want {
				t.Errorf("FolderName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectFileName)

	created, err := EnsureProject(path, "WheatTrial")
	if err != nil {
		t.Fatalf("EnsureProject() error = %v", err)
	}
	if !created {
		t.Error("Expected created=true for missing file")
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if p.Project.ShortName != "WheatTrial" {
		t.Errorf("ShortName = %q, want %q", p.Project.ShortName, "WheatTrial")
	}
	if p.Project.Researcher.Role != "Principal Investigator" {
		t.Errorf("Researcher role = %q", p.Project.Researcher.Role)
	}
	if len(p.Project.Sites) != 1 || !p.Project.Sites[0].IsPlaceholder() {
		t.Errorf("Expected a single placeholder site, got %v", p.Project.Sites)
	}
	if len(p.ActiveSites()) != 0 {
		t.Error("Placeholder site must not be active")
	}

	// Existing files are never rewritten, even when edited.
	if err := os.WriteFile(path, []byte("project:\n  ShortName: Edited\n"), 0644); err != nil {
		t.Fatal(err)
	}
	created, err = EnsureProject(path, "WheatTrial")
	if err != nil {
		t.Fatalf("EnsureProject() second call error = %v", err)
	}
	if created {
		t.Error("Expected created=false for existing file")
	}
	p, err = LoadProject(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Project.ShortName != "Edited" {
		t.Error("EnsureProject must not overwrite an edited file")
	}
}

func TestProjectSites(t *testing.T) {
	p := &ProjectSummary{Project: ProjectInfo{Sites: []Site{
		{Year: PlaceholderYear},
		{Name: "Narrabri", Year: 2024},
		{Name: "Narrabri", Year: 2025},
		{Name: "Camden", Year: 2024},
	}}}

	if got := p.ActiveSites(); len(got) != 3 {
		t.Errorf("ActiveSites() = %v, want 3 sites", got)
	}
	if _, ok := p.FindSite("Camden", 2024); !ok {
		t.Error("FindSite(Camden, 2024) not found")
	}
	if _, ok := p.FindSite("Camden", 2025); ok {
		t.Error("FindSite(Camden, 2025) should not be found")
	}
	if _, ok := p.FindSite("Atlantis", 2024); ok {
		t.Error("FindSite(Atlantis, 2024) should not be found")
	}

	// A resurveyed site shares its name across years; the lookup must
	// return the entry for the requested year.
	site, ok := p.FindSite("Narrabri", 2025)
	if !ok {
		t.Fatal("FindSite(Narrabri, 2025) not found")
	}
	if site.Year != 2025 {
		t.Errorf("FindSite(Narrabri, 2025) returned year %d", site.Year)
	}

	if !p.HasSiteNamed("Narrabri") {
		t.Error("HasSiteNamed(Narrabri) = false")
	}
	if p.HasSiteNamed("Atlantis") {
		t.Error("HasSiteNamed(Atlantis) = true")
	}
}
