package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Load reads every file and concatenates the rows in argument order.
func Load(paths ...string) ([]Record, error) {
	var out []Record
	for _, path := range paths {
		rows, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return rows, nil
}

// Parse reads one CSV table. Header names and cells are whitespace trimmed.
// Rows without a region or without either rate are skipped.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	cols := map[string]int{}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, required := range []string{ColumnRegion, ColumnDate, ColumnUnemployment, ColumnParticipation} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		region := cell(row, ColumnRegion)
		if region == "" || cell(row, ColumnUnemployment) == "" || cell(row, ColumnParticipation) == "" {
			continue
		}
		date, err := ParseDate(cell(row, ColumnDate))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := Record{
			Region:    region,
			Date:      date,
			Frequency: cell(row, ColumnFrequency),
			Area:      cell(row, ColumnArea),
		}
		if rec.UnemploymentRate, err = parseFloat(cell(row, ColumnUnemployment)); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColumnUnemployment, err)
		}
		if rec.LabourParticipationRate, err = parseFloat(cell(row, ColumnParticipation)); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColumnParticipation, err)
		}
		if rec.Employed, err = parseFloat(cell(row, ColumnEmployed)); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColumnEmployed, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseDate accepts the day-first dates of the source tables and ISO dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
