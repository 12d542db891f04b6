package records

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultPreviewLen = 20

type KPIs struct {
	AvgUnemploymentRate        float64 `json:"avgUnemploymentRate"`
	MaxUnemploymentRate        float64 `json:"maxUnemploymentRate"`
	AvgLabourParticipationRate float64 `json:"avgLabourParticipationRate"`
}

type RegionAverage struct {
	Region                  string  `json:"region"`
	UnemploymentRate        float64 `json:"unemploymentRate"`
	LabourParticipationRate float64 `json:"labourParticipationRate"`
	Rows                    int     `json:"rows"`
}

type MonthlyPoint struct {
	Month            time.Time `json:"month"`
	UnemploymentRate float64   `json:"unemploymentRate"`
}

type Summary struct {
	Rows           int             `json:"rows"`
	KPIs           KPIs            `json:"kpis"`
	RegionAverages []RegionAverage `json:"regionAverages"`
	Trend          []MonthlyPoint  `json:"trend"`
	Preview        []Record        `json:"preview"`
}

// Summarize computes the dashboard aggregates of already filtered rows. A
// selection without rows is ErrNoData, never a summary of NaNs.
func Summarize(rows []Record, previewLen int) (*Summary, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	if previewLen <= 0 {
		previewLen = DefaultPreviewLen
	}
	unemployment := make([]float64, len(rows))
	participation := make([]float64, len(rows))
	for i, row := range rows {
		unemployment[i] = row.UnemploymentRate
		participation[i] = row.LabourParticipationRate
	}

	s := &Summary{
		Rows: len(rows),
		KPIs: KPIs{
			AvgUnemploymentRate:        stat.Mean(unemployment, nil),
			MaxUnemploymentRate:        floats.Max(unemployment),
			AvgLabourParticipationRate: stat.Mean(participation, nil),
		},
		RegionAverages: RegionAverages(rows),
		Trend:          MonthlyTrend(rows),
	}
	if len(rows) < previewLen {
		previewLen = len(rows)
	}
	s.Preview = append([]Record(nil), rows[:previewLen]...)
	return s, nil
}

// RegionAverages is the per-region mean, sorted by unemployment rate
// descending, ties by region name.
func RegionAverages(rows []Record) []RegionAverage {
	type acc struct {
		unemployment, participation []float64
	}
	groups := map[string]*acc{}
	for _, row := range rows {
		g, ok := groups[row.Region]
		if !ok {
			g = &acc{}
			groups[row.Region] = g
		}
		g.unemployment = append(g.unemployment, row.UnemploymentRate)
		g.participation = append(g.participation, row.LabourParticipationRate)
	}

	out := make([]RegionAverage, 0, len(groups))
	for region, g := range groups {
		out = append(out, RegionAverage{
			Region:                  region,
			UnemploymentRate:        stat.Mean(g.unemployment, nil),
			LabourParticipationRate: stat.Mean(g.participation, nil),
			Rows:                    len(g.unemployment),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnemploymentRate == out[j].UnemploymentRate {
			return out[i].Region < out[j].Region
		}
		return out[i].UnemploymentRate > out[j].UnemploymentRate
	})
	return out
}

// MonthlyTrend is the mean unemployment rate per calendar month, oldest
// first.
func MonthlyTrend(rows []Record) []MonthlyPoint {
	months := map[time.Time][]float64{}
	for _, row := range rows {
		m := time.Date(row.Date.Year(), row.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		months[m] = append(months[m], row.UnemploymentRate)
	}
	out := make([]MonthlyPoint, 0, len(months))
	for m, values := range months {
		out = append(out, MonthlyPoint{Month: m, UnemploymentRate: stat.Mean(values, nil)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}
