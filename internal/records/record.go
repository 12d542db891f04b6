// Package records loads the regional unemployment tables and filters and
// aggregates them for the dashboard.
package records

import (
	"errors"
	"time"
)

var ErrNoData = errors.New("no data for selection")

const (
	ColumnRegion        = "Region"
	ColumnDate          = "Date"
	ColumnFrequency     = "Frequency"
	ColumnUnemployment  = "Estimated Unemployment Rate (%)"
	ColumnEmployed      = "Estimated Employed"
	ColumnParticipation = "Estimated Labour Participation Rate (%)"
	ColumnArea          = "Area"
)

// Record is one region/date row.
type Record struct {
	Region                  string    `json:"region"`
	Date                    time.Time `json:"date"`
	Frequency               string    `json:"frequency,omitempty"`
	UnemploymentRate        float64   `json:"unemploymentRate"`
	Employed                float64   `json:"employed"`
	LabourParticipationRate float64   `json:"labourParticipationRate"`
	Area                    string    `json:"area,omitempty"`
}

// Selection is the dashboard filter: region membership and an inclusive date
// interval at day granularity. A zero Start or End leaves that side open.
type Selection struct {
	Regions []string  `json:"regions"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}
