package fieldvault

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/fieldvault/pkg/core"
)

// summarySuffix is appended to the node name to form the table filename,
// e.g. Narrabri/Narrabri_ProjectsSummary.csv.
const summarySuffix = "_ProjectsSummary.csv"

// SummaryName returns the filename of a node's projects-summary table.
func SummaryName(node core.Node) string {
	return node.Name + summarySuffix
}

// EnsureSummary creates an empty projects-summary table when missing.
// The header is "Project" followed by the node's sensor platforms.
func EnsureSummary(path string, node core.Node) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	header := append([]string{"Project"}, node.SensorPlatforms...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return false, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, err
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("failed to write summary table: %w", err)
	}
	return true, nil
}

// LoadSummary reads a node's project-vs-sensor table.
//
// The table is projected onto the canonical column set (Project + the
// node's sensor platforms): sensor columns missing from the file are added
// with a FALSE fill, columns unknown to the node are dropped. When repair
// is true and the layout differed, the repaired table is written back and
// repaired is reported so the caller can stage the file.
//
// Rows with a missing project name or an unparseable flag are skipped and
// reported as issues; they never abort the load.
func LoadSummary(path string, node core.Node, repair bool) (rows []core.ProjectRow, repaired bool, issues []core.RowIssue, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to read summary table: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // repaired below
	records, err := reader.ReadAll()
	if err != nil {
		return nil, false, nil, fmt.Errorf("invalid summary table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, false, nil, fmt.Errorf("summary table %s is empty", path)
	}

	header := records[0]
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "Project") {
		return nil, false, nil, fmt.Errorf("summary table %s: first column must be 'Project'", path)
	}

	// Map the file's columns onto the node's sensors.
	colIdx := make(map[string]int, len(node.SensorPlatforms))
	for i, h := range header[1:] {
		colIdx[strings.TrimSpace(h)] = i + 1
	}

	canonical := len(header) == len(node.SensorPlatforms)+1
	for _, h := range header[1:] {
		name := strings.TrimSpace(h)
		if !node.HasSensor(name) {
			canonical = false
			issues = append(issues, core.RowIssue{
				File:   path,
				Reason: fmt.Errorf("column %q dropped: %w", name, core.ErrUnknownSensor).Error(),
			})
		}
	}
	for i, s := range node.SensorPlatforms {
		idx, ok := colIdx[s]
		if !ok || idx != i+1 {
			canonical = false
		}
		if !ok {
			issues = append(issues, core.RowIssue{
				File:   path,
				Reason: fmt.Sprintf("missing sensor column %q, added with FALSE fill", s),
			})
		}
	}

	for rowNum, record := range records[1:] {
		name := ""
		if len(record) > 0 {
			name = strings.TrimSpace(record[0])
		}
		if name == "" {
			issues = append(issues, core.RowIssue{File: path, Row: rowNum + 1, Reason: "missing project name"})
			continue
		}

		row := core.ProjectRow{Name: name, Sensors: make(map[string]bool, len(node.SensorPlatforms))}
		bad := false
		for _, s := range node.SensorPlatforms {
			idx, ok := colIdx[s]
			if !ok || idx >= len(record) || strings.TrimSpace(record[idx]) == "" {
				row.Sensors[s] = false
				continue
			}
			val, err := strconv.ParseBool(strings.TrimSpace(record[idx]))
			if err != nil {
				issues = append(issues, core.RowIssue{
					File:   path,
					Row:    rowNum + 1,
					Reason: fmt.Sprintf("sensor %q: invalid flag %q", s, record[idx]),
				})
				bad = true
				break
			}
			row.Sensors[s] = val
		}
		if bad {
			continue
		}
		rows = append(rows, row)
	}

	if !canonical && repair {
		if err := writeSummary(path, node, records); err != nil {
			return nil, false, issues, err
		}
		repaired = true
	}

	return rows, repaired, issues, nil
}

// writeSummary rewrites the table projected onto the canonical columns.
// Data from dropped columns is discarded, matching the original repair
// behavior of the projects-summary table.
func writeSummary(path string, node core.Node, records [][]string) error {
	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, h := range header[1:] {
		colIdx[strings.TrimSpace(h)] = i + 1
	}

	out := [][]string{append([]string{"Project"}, node.SensorPlatforms...)}
	for _, record := range records[1:] {
		row := make([]string, len(node.SensorPlatforms)+1)
		if len(record) > 0 {
			row[0] = record[0]
		}
		for i, s := range node.SensorPlatforms {
			if idx, ok := colIdx[s]; ok && idx < len(record) {
				row[i+1] = record[idx]
			} else {
				row[i+1] = "FALSE"
			}
		}
		out = append(out, row)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(out); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return writeFileAtomic(path, buf.Bytes(), 0644)
}
