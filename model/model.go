package model

import (
	"fmt"

	"github.com/Ibrahemamer/Text-Analysis/corpus"
	"github.com/Ibrahemamer/Text-Analysis/matrix"
)

var constructors = make(map[string]ModelCtor)

// Config collects the sampler hyperparameters. Zero values select the
// documented defaults.
type Config struct {
	// number of topics, required, must be at least 1
	TopicNum uint32
	// document-topic smoothing prior; 0 or negative selects 50/TopicNum
	Alpha float64
	// term-topic smoothing prior; 0 or negative selects 200/V
	Beta float64
	// sweeps between perplexity evaluations; 0 or negative selects 25
	ReportEvery int
	// RNG seed for reproducible runs; 0 selects a time-based seed
	Seed int64
}

// the common interface topic model samplers should follow
type Model interface {
	// train model for nSweeps full passes over the corpus
	Train(nSweeps int) error
	// redraw the topic of a single word occurrence from its
	// conditional distribution
	ResampleOne(doc, pos int)
	// score the in-sample fit and append the score to the trace
	Perplexity() float64
	// ordered scores of all evaluations so far
	PerplexityTrace() []float64
	// top-n terms of one topic by raw count
	TopWords(topic uint32, n int) ([]string, error)
	// get word-topic distribution
	Phi() *matrix.Float64Matrix
	// get doc-topic distribution
	Theta() *matrix.Float64Matrix
	// serialize posterior word topic distribution
	SavePhi(fn string) error
	// serialize posterior document topic distribution
	SaveTheta(fn string) error
	// serialize word topic count table
	SaveWordTopic(fn string) error
	// deserialize word topic count table
	LoadWordTopic(fn string) error
}

// new samplers should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(dat *corpus.Corpus, cfg Config) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
