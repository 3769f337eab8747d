package fieldvault

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/fieldvault/pkg/core"
)

// FieldLogFileName is the per-project field log filename.
const FieldLogFileName = "FieldLog.csv"

// FieldLogColumns is the canonical field log header.
var FieldLogColumns = []string{
	"Year", "Month", "Day", "Sensor", "Technician",
	"Runs", "Site", "MakeNotesFile", "CheckSum",
}

// TierFolders are created inside every run folder.
var TierFolders = []string{"Tier0_raw", "Tier1_proc", "Tier2_traits"}

// historicalWindow is how far back a field day may lie before historical
// mode is required.
const historicalWindow = 14 * 24 * time.Hour

// futureSlack absorbs timezone skew when rejecting future dates.
const futureSlack = 12 * time.Hour

// FieldLog is an in-memory field log table. Raw rows are retained verbatim
// so that malformed rows survive a checksum write-back unchanged.
type FieldLog struct {
	Path  string
	rows  [][]string
	dirty bool
}

// EnsureFieldLog creates an empty field log when missing.
func EnsureFieldLog(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(FieldLogColumns); err != nil {
		return false, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, err
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("failed to write field log: %w", err)
	}
	return true, nil
}

// LoadFieldLog reads a field log, projecting it onto the canonical columns.
// Missing columns are added empty; repaired is reported when the layout
// differed so the caller can save and stage the file.
func LoadFieldLog(path string) (log *FieldLog, repaired bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read field log: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("invalid field log %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, false, fmt.Errorf("field log %s is empty", path)
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}

	canonical := len(header) == len(FieldLogColumns)
	for i, c := range FieldLogColumns {
		if idx, ok := colIdx[c]; !ok || idx != i {
			canonical = false
		}
	}

	log = &FieldLog{Path: path, dirty: !canonical}
	for _, record := range records[1:] {
		row := make([]string, len(FieldLogColumns))
		for i, c := range FieldLogColumns {
			if idx, ok := colIdx[c]; ok && idx < len(record) {
				row[i] = strings.TrimSpace(record[idx])
			}
		}
		log.rows = append(log.rows, row)
	}

	return log, !canonical, nil
}

// Len returns the number of data rows.
func (l *FieldLog) Len() int { return len(l.rows) }

// Dirty reports whether the log has unsaved changes (column repair or
// checksum write-backs).
func (l *FieldLog) Dirty() bool { return l.dirty }

// Entry parses data row i (0-based) into a FieldEntry.
func (l *FieldLog) Entry(i int) (core.FieldEntry, error) {
	row := l.rows[i]
	var e core.FieldEntry
	var err error

	if e.Year, err = atoiField(row[0], "Year"); err != nil {
		return e, err
	}
	if e.Month, err = atoiField(row[1], "Month"); err != nil {
		return e, err
	}
	if e.Day, err = atoiField(row[2], "Day"); err != nil {
		return e, err
	}

	e.Sensor = row[3]
	if e.Sensor == "" {
		return e, fmt.Errorf("missing Sensor")
	}
	e.Technician = row[4]
	if e.Technician == "" {
		return e, fmt.Errorf("missing Technician")
	}

	if e.Runs, err = atoiField(row[5], "Runs"); err != nil {
		return e, err
	}

	e.Site = row[6]
	if e.Site == "" {
		return e, fmt.Errorf("missing Site")
	}

	if row[7] != "" {
		e.MakeNotesFile, err = strconv.ParseBool(row[7])
		if err != nil {
			return e, fmt.Errorf("invalid MakeNotesFile %q", row[7])
		}
	}

	e.CheckSum = row[8]
	return e, nil
}

// SetChecksum records a computed checksum on row i for write-back.
func (l *FieldLog) SetChecksum(i int, sum string) {
	l.rows[i][8] = sum
	l.dirty = true
}

// Save writes the log back in canonical column order.
func (l *FieldLog) Save() error {
	out := [][]string{FieldLogColumns}
	out = append(out, l.rows...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(out); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := writeFileAtomic(l.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save field log: %w", err)
	}
	l.dirty = false
	return nil
}

func atoiField(s, name string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	return v, nil
}

// Checksum computes the integrity checksum of an entry over its user-edited
// fields. Kept small (mod 1e8) so it survives round-trips through
// spreadsheet tools without precision loss.
func Checksum(e core.FieldEntry) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%d|%s|%s|%d|%s|%t",
		e.Year, e.Month, e.Day, e.Sensor, e.Technician, e.Runs, e.Site, e.MakeNotesFile)
	return strconv.FormatUint(h.Sum64()%100000000, 10)
}

// EntryDate returns the calendar date of an entry, rejecting impossible
// dates (the time package would otherwise normalize them).
func EntryDate(e core.FieldEntry) (time.Time, error) {
	if e.Month < 1 || e.Month > 12 || e.Day < 1 || e.Day > 31 || e.Year < 1 {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", core.ErrInvalidDate, e.Year, e.Month, e.Day)
	}
	d := time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.Local)
	if d.Year() != e.Year || d.Month() != time.Month(e.Month) || d.Day() != e.Day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", core.ErrInvalidDate, e.Year, e.Month, e.Day)
	}
	return d, nil
}

// DateFolder returns the field day folder name, e.g. 20250522.
func DateFolder(e core.FieldEntry) string {
	return fmt.Sprintf("%04d%02d%02d", e.Year, e.Month, e.Day)
}

// ValidateEntry checks a field log row against the project row and the
// declared sites. The date window check is skipped in historical mode
// (completed rows re-validated on later runs pass historical=true).
func ValidateEntry(e core.FieldEntry, project core.ProjectRow, summary *ProjectSummary, now time.Time, historical bool) error {
	date, err := EntryDate(e)
	if err != nil {
		return err
	}

	if date.After(now.Add(futureSlack)) {
		return fmt.Errorf("%w: %s is after %s", core.ErrFutureDate,
			date.Format("2006-01-02"), now.Format("2006-01-02"))
	}
	if !historical && date.Before(now.Add(-historicalWindow)) {
		return fmt.Errorf("%w: %s (use historical mode to allow past dates)",
			core.ErrHistoricalDate, date.Format("2006-01-02"))
	}

	if !project.Sensors[e.Sensor] {
		return fmt.Errorf("%w: %q (edit the projects summary to enable it)",
			core.ErrSensorNotEnabled, e.Sensor)
	}

	if e.Runs < 1 {
		return fmt.Errorf("number of runs must be greater than 0, got %d", e.Runs)
	}

	if _, ok := summary.FindSite(e.Site, e.Year); !ok {
		if summary.HasSiteNamed(e.Site) {
			return fmt.Errorf("site %q is not declared for year %d", e.Site, e.Year)
		}
		return fmt.Errorf("%w: %q (edit %s to add sites)", core.ErrUnknownSite, e.Site, ProjectFileName)
	}

	return nil
}
