package main

import (
	"flag"
	"fmt"
	"strings"

	log "github.com/golang/glog"

	"github.com/Ibrahemamer/Text-Analysis/corpus"
	"github.com/Ibrahemamer/Text-Analysis/model"
)

var (
	input      = flag.String("input_file", "", "input training file, one document per line")
	topicModel = flag.String("model", "lda", "model type")
	alpha      = flag.Float64("alpha", 0, "document-topic smoothing, 0 selects 50/k")
	beta       = flag.Float64("beta", 0, "term-topic smoothing, 0 selects 200/V")
	topicNum   = flag.Uint("k", 20, "number of topics")
	sweeps     = flag.Int("sweeps", 100, "number of full Gibbs sweeps")
	interval   = flag.Int("report_interval", 25, "sweeps between perplexity reports")
	seed       = flag.Int64("seed", 0, "RNG seed, 0 selects a time-based seed")
	topWords   = flag.Int("top_words", 10, "words to print per topic after training")
	saveModel  = flag.String("save_model", "", "path prefix for saving phi, theta and the word-topic table")
)

func main() {
	flag.Parse()

	// read training data
	data := &corpus.Corpus{}
	if err := data.LoadFile(*input); err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	// init model
	ctor, err := model.GetModel(*topicModel)
	if err != nil {
		log.Fatal(err)
	}
	m, err := ctor(data, model.Config{
		TopicNum:    uint32(*topicNum),
		Alpha:       *alpha,
		Beta:        *beta,
		ReportEvery: *interval,
		Seed:        *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Train(*sweeps); err != nil {
		log.Fatal(err)
	}

	for k := uint32(0); k < uint32(*topicNum); k += 1 {
		words, err := m.TopWords(k, *topWords)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("topic %d: %s\n", k, strings.Join(words, " "))
	}

	if *saveModel != "" {
		if err := m.SavePhi(*saveModel); err != nil {
			log.Fatal(err)
		}
		if err := m.SaveTheta(*saveModel); err != nil {
			log.Fatal(err)
		}
		if err := m.SaveWordTopic(*saveModel); err != nil {
			log.Fatal(err)
		}
	}
}
