package records

import (
	"sort"
	"time"
)

// Filter keeps rows whose region is selected and whose date lies in
// [Start, End]. Applying the same selection twice changes nothing.
func Filter(rows []Record, sel Selection) []Record {
	regions := make(map[string]struct{}, len(sel.Regions))
	for _, r := range sel.Regions {
		regions[r] = struct{}{}
	}
	start, end := day(sel.Start), day(sel.End)

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if _, ok := regions[row.Region]; !ok {
			continue
		}
		d := day(row.Date)
		if !sel.Start.IsZero() && d.Before(start) {
			continue
		}
		if !sel.End.IsZero() && d.After(end) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Bounds is the default selection: every region, sorted, and the full date
// range of rows.
func Bounds(rows []Record) Selection {
	var sel Selection
	seen := map[string]struct{}{}
	for _, row := range rows {
		if _, ok := seen[row.Region]; !ok {
			seen[row.Region] = struct{}{}
			sel.Regions = append(sel.Regions, row.Region)
		}
		if sel.Start.IsZero() || row.Date.Before(sel.Start) {
			sel.Start = row.Date
		}
		if sel.End.IsZero() || row.Date.After(sel.End) {
			sel.End = row.Date
		}
	}
	sort.Strings(sel.Regions)
	return sel
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
