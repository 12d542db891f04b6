package sales

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor/linear"
	"github.com/go-sod/insight/internal/predictor/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc *Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	h, err := NewHandler(&Config{RequestTimeout: time.Second}, svc)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, r)
	return w
}

func TestHandler_LinearModel(t *testing.T) {
	model, err := linear.New(linear.Payload{
		Features:  feature.SalesSchemaV1.Fields,
		Coef:      []float64{0.05, 0.1, 0},
		Intercept: 4.5,
	})
	require.NoError(t, err)
	svc, err := NewService(model)
	require.NoError(t, err)

	w := serve(t, svc, `{"tv": 100, "radio": 20, "newspaper": 50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got Estimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.InDelta(t, 11.5, got.Sales, 1e-9)
	assert.Equal(t, "11.50", got.Formatted)
}

func TestHandler_NegativeBudget(t *testing.T) {
	model := &mocks.Regressor{}
	model.On("Features").Return(nil)
	svc, err := NewService(model)
	require.NoError(t, err)

	w := serve(t, svc, `{"tv": -1, "radio": 20, "newspaper": 50}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tv")
	model.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestNewService_WrongModel(t *testing.T) {
	model := &mocks.Regressor{}
	model.On("Features").Return(feature.CarSchemaV1.Fields)
	_, err := NewService(model)
	assert.ErrorIs(t, err, feature.ErrSchemaMismatch)
}
