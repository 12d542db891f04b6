package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-sod/insight/internal/carprice"
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/predictor"
	"github.com/go-sod/insight/internal/predictor/linear"
	"github.com/go-sod/insight/internal/predictor/mocks"
	"github.com/go-sod/insight/internal/records"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/server"
	"github.com/go-sod/insight/internal/spam"
	"github.com/go-sod/insight/internal/unemployment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestServer serves every route the CLI calls. The car price model
// returns the present price, the sales model sums the budgets.
func newTestServer(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()

	carModel, err := linear.New(linear.Payload{Features: feature.CarSchemaV1.Fields, Coef: []float64{0, 1, 0, 0, 0, 0, 0, 0}})
	require.NoError(t, err)
	carSvc, err := carprice.NewService(carModel)
	require.NoError(t, err)
	carHandler, err := carprice.NewHandler(&carprice.Config{RequestTimeout: time.Second}, carSvc)
	require.NoError(t, err)
	mux.Handle("/carprice", carHandler)

	salesModel, err := linear.New(linear.Payload{Features: feature.SalesSchemaV1.Fields, Coef: []float64{1, 1, 1}})
	require.NoError(t, err)
	salesSvc, err := sales.NewService(salesModel)
	require.NoError(t, err)
	salesHandler, err := sales.NewHandler(&sales.Config{RequestTimeout: time.Second}, salesSvc)
	require.NoError(t, err)
	mux.Handle("/sales", salesHandler)

	textModel := &mocks.TextClassifier{}
	textModel.On("Classes").Return([]string{"0", "1"})
	textModel.On("ClassifyText", "win free money").Return(&predictor.Classification{
		Class: 1, Label: "1", Confidence: 0.9,
		Probabilities: []predictor.ClassProbability{{Label: "0", Probability: 0.1}, {Label: "1", Probability: 0.9}},
	}, nil)
	spamSvc, err := spam.NewService(textModel, "1")
	require.NoError(t, err)
	spamHandler, err := spam.NewHandler(&spam.Config{RequestTimeout: time.Second, MaxTextLen: 1000}, spamSvc)
	require.NoError(t, err)
	mux.Handle("/spam", spamHandler)

	irisModel := &mocks.VectorClassifier{}
	irisModel.On("Classify", mock.Anything).Return(&predictor.Classification{
		Class: 1, Label: "Iris-versicolor", Confidence: 0.8,
		Probabilities: []predictor.ClassProbability{
			{Label: "Iris-setosa", Probability: 0},
			{Label: "Iris-versicolor", Probability: 0.8},
			{Label: "Iris-virginica", Probability: 0.2},
		},
	}, nil)
	irisHandler, err := iris.NewHandler(&iris.Config{RequestTimeout: time.Second}, iris.NewService(irisModel, iris.Summary{Accuracy: 0.9667, K: 5}))
	require.NoError(t, err)
	mux.Handle("/iris", irisHandler)

	rows := []records.Record{
		{Region: "Region A", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 5, LabourParticipationRate: 40},
		{Region: "Region A", Date: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 7, LabourParticipationRate: 42},
		{Region: "Region B", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 10, LabourParticipationRate: 50},
	}
	dashSvc, err := unemployment.NewService(rows, nil, 20)
	require.NoError(t, err)
	dashHandler, err := unemployment.NewHandler(&unemployment.Config{RequestTimeout: time.Second}, dashSvc)
	require.NoError(t, err)
	mux.Handle("/unemployment", dashHandler)

	ctx, cancel := context.WithCancel(context.Background())
	mux.Handle("/health", server.HandleHealth(ctx))

	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestRun_PredictCarPriceDefaults(t *testing.T) {
	addr := newTestServer(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"predict", "carprice", "-addr", addr, "-present-price", "5.59"}, &out))
	assert.Equal(t, "₹ 5.59 Lakhs\n", out.String())
}

func TestRun_PredictCarPriceUnknownLabel(t *testing.T) {
	addr := newTestServer(t)
	err := run(context.Background(), []string{"predict", "carprice", "-addr", addr, "-owner", "Fourth"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestRun_Predict(t *testing.T) {
	addr := newTestServer(t)
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "sales",
			args:     []string{"predict", "sales", "-addr", addr, "-tv", "1", "-radio", "2", "-newspaper", "3"},
			expected: []string{"6.00"},
		},
		{
			name:     "spam",
			args:     []string{"predict", "spam", "-addr", addr, "win", "free", "money"},
			expected: []string{"spam (90.0%)"},
		},
		{
			name:     "iris",
			args:     []string{"predict", "iris", "-addr", addr, "-sepal-length", "6.1", "-sepal-width", "2.9", "-petal-length", "4.7", "-petal-width", "1.4"},
			expected: []string{"Iris-versicolor", "80.0%", "0.9667"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(context.Background(), test.args, &out))
			for _, s := range test.expected {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRun_Dashboard(t *testing.T) {
	addr := newTestServer(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"dashboard", "-addr", addr, "-regions", "Region A"}, &out))
	assert.Contains(t, out.String(), "6.00%")
	assert.Contains(t, out.String(), "Region A")
	assert.NotContains(t, out.String(), "Region B")

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"dashboard", "-addr", addr, "-regions", "Region Z"}, &out))
	assert.Equal(t, "no data for selection\n", out.String())
}

func TestRun_Health(t *testing.T) {
	addr := newTestServer(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"health", "-addr", addr}, &out))
	assert.Equal(t, "ok\n", out.String())

	assert.Error(t, run(context.Background(), []string{"health", "-addr", "127.0.0.1:1", "-timeout", "1s"}, &bytes.Buffer{}))
}
