// Package mocks holds testify mocks of the predictor contracts.
package mocks

import (
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor"
	"github.com/stretchr/testify/mock"
)

type Regressor struct {
	mock.Mock
}

func (m *Regressor) Predict(vec feature.Vector) (float64, error) {
	args := m.Called(vec)
	return args.Get(0).(float64), args.Error(1)
}

func (m *Regressor) Features() []string {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.([]string)
	}
	return nil
}

type TextClassifier struct {
	mock.Mock
}

func (m *TextClassifier) ClassifyText(text string) (*predictor.Classification, error) {
	args := m.Called(text)
	if v := args.Get(0); v != nil {
		return v.(*predictor.Classification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TextClassifier) Classes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

type VectorClassifier struct {
	mock.Mock
}

func (m *VectorClassifier) Classify(vec feature.Vector) (*predictor.Classification, error) {
	args := m.Called(vec)
	if v := args.Get(0); v != nil {
		return v.(*predictor.Classification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VectorClassifier) Classes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
