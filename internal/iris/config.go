package iris

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"INSIGHT_IRIS_REQUEST_TIMEOUT" default:"10s"`
	Dataset        string        `envconfig:"INSIGHT_IRIS_DATASET" default:"data/Iris.csv"`
	K              int           `envconfig:"INSIGHT_IRIS_K" default:"5"`
	TestSize       float64       `envconfig:"INSIGHT_IRIS_TEST_SIZE" default:"0.2"`
	Seed           uint32        `envconfig:"INSIGHT_IRIS_SEED" default:"42"`
	Distance       string        `envconfig:"INSIGHT_IRIS_DISTANCE" default:"EUCLIDEAN"`
	// kdtree or brute, both give the same neighbours
	Search string `envconfig:"INSIGHT_IRIS_SEARCH" default:"kdtree"`
}
