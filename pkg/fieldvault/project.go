package fieldvault

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/fieldvault/pkg/core"
)

const (
	// ProjectFileName is the per-project metadata template filename.
	ProjectFileName = "ProjectSummary.yaml"

	// PlaceholderYear marks a site stub that has not been filled in yet.
	PlaceholderYear = -9999
)

// ScaffoldFolders are created inside every project and site folder.
var ScaffoldFolders = []string{"Documentation", "Code"}

// projectNameRe is the documented naming convention: a letter followed by
// 2 to 63 letters, digits, underscores or hyphens. Keeps names safe as
// folder names and git paths.
var projectNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{2,63}$`)

// ValidateProjectName checks a project name against the naming convention.
func ValidateProjectName(name string) error {
	if !projectNameRe.MatchString(name) {
		return fmt.Errorf("%q: %w", name, core.ErrInvalidProjectName)
	}
	return nil
}

// ProjectSummary is the per-project YAML metadata document.
type ProjectSummary struct {
	Project ProjectInfo `yaml:"project"`
}

// ProjectInfo carries the free-form project fields researchers fill in.
type ProjectInfo struct {
	ShortName     string     `yaml:"ShortName"`
	FullName      string     `yaml:"FullName"`
	Description   string     `yaml:"description"`
	StartDate     string     `yaml:"start_date"`
	EndDate       string     `yaml:"end_date"`
	FundingSource string     `yaml:"funding_source"`
	Status        string     `yaml:"status"`
	ProjectCode   string     `yaml:"ProjectCode"`
	Internal      *bool      `yaml:"Internal"`
	Researcher    Researcher `yaml:"researcher"`
	Sites         []Site     `yaml:"sites"`
}

// Researcher identifies the principal investigator of a project.
type Researcher struct {
	FirstName   string `yaml:"FirstName"`
	LastName    string `yaml:"LastName"`
	Title       string `yaml:"Title"`
	Email       string `yaml:"email"`
	Institution string `yaml:"institution"`
	Role        string `yaml:"role"`
	Orcid       string `yaml:"orcid"`
}

// Site describes one location where data is collected for the project.
type Site struct {
	Name                  string   `yaml:"name"`
	Year                  int      `yaml:"year"`
	Season                string   `yaml:"season"`
	SubLocation           string   `yaml:"SubLocation"`
	Latitude              *float64 `yaml:"latitude"`
	Longitude             *float64 `yaml:"longitude"`
	Description           string   `yaml:"description"`
	ControlledEnvironment *bool    `yaml:"ControlledEnvironment"`
	Sensors               []string `yaml:"sensors"`
}

// IsPlaceholder reports whether the site is still the unedited template stub.
func (s Site) IsPlaceholder() bool {
	return s.Name == "" || s.Year == PlaceholderYear
}

// FolderName returns the standardized site folder name: <year><name>,
// suffixed _C for controlled environments and _F for field sites.
func (s Site) FolderName() string {
	name := fmt.Sprintf("%d%s", s.Year, s.Name)
	if s.ControlledEnvironment != nil {
		if *s.ControlledEnvironment {
			name += "_C"
		} else {
			name += "_F"
		}
	}
	return name
}

// NewProjectTemplate returns a fresh metadata document for the given
// project, with a single placeholder site to be edited by the researcher.
func NewProjectTemplate(name string) *ProjectSummary {
	return &ProjectSummary{
		Project: ProjectInfo{
			ShortName: name,
			Researcher: Researcher{
				Role: "Principal Investigator",
			},
			Sites: []Site{
				{Year: PlaceholderYear},
			},
		},
	}
}

// ActiveSites returns the sites that have been filled in.
func (p *ProjectSummary) ActiveSites() []Site {
	var out []Site
	for _, s := range p.Project.Sites {
		if !s.IsPlaceholder() {
			out = append(out, s)
		}
	}
	return out
}

// FindSite returns the site with the given name and year, if declared.
// Sites may share a name across years (multi-year resurveys), so the
// lookup needs both.
func (p *ProjectSummary) FindSite(name string, year int) (Site, bool) {
	for _, s := range p.Project.Sites {
		if s.Name == name && s.Year == year {
			return s, true
		}
	}
	return Site{}, false
}

// HasSiteNamed reports whether any declared site carries the name,
// regardless of year.
func (p *ProjectSummary) HasSiteNamed(name string) bool {
	for _, s := range p.Project.Sites {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Marshal serializes the document with the vault's standard indentation.
func (p *ProjectSummary) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(p); err != nil {
		return nil, err
	}
	encoder.Close()
	return buf.Bytes(), nil
}

// LoadProject reads a project metadata document.
func LoadProject(path string) (*ProjectSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p ProjectSummary
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid project summary %s: %w", path, err)
	}
	return &p, nil
}

// EnsureProject creates the metadata template when missing. Existing files
// are never touched: the template is a starting point, not a schema sync.
func EnsureProject(path, name string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	data, err := NewProjectTemplate(name).Marshal()
	if err != nil {
		return false, fmt.Errorf("failed to serialize project template: %w", err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write project template: %w", err)
	}
	return true, nil
}
