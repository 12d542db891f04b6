package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-sod/insight/internal/predictor"
	"github.com/go-sod/insight/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Dashboard(t *testing.T) {
	averages := []records.RegionAverage{
		{Region: "Tripura", UnemploymentRate: 28.35},
		{Region: "Haryana", UnemploymentRate: 26.28},
	}
	trend := []records.MonthlyPoint{
		{Month: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 22.2},
		{Month: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 19.8},
	}

	var b bytes.Buffer
	require.NoError(t, Render(&b, RegionBar(averages), TrendLine(trend)))

	out := b.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Average Unemployment Rate by Region")
	assert.Contains(t, out, "Tripura")
	assert.Contains(t, out, "2020-04")
}

func TestRender_Probabilities(t *testing.T) {
	c, err := predictor.NewClassification(
		[]string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"},
		[]float64{0, 0.4, 0.6},
	)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, Render(&b, ProbabilityBar("Iris species", c)))
	assert.Contains(t, b.String(), "Iris-virginica")
}
