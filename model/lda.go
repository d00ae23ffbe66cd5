package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/floats"

	"github.com/Ibrahemamer/Text-Analysis/corpus"
	"github.com/Ibrahemamer/Text-Analysis/matrix"
)

func init() {
	Register("lda", func(dat *corpus.Corpus, cfg Config) (Model, error) {
		return NewLDA(dat, cfg)
	})
}

// LDA infers topics with an uncollapsed Gibbs sampler: every word
// occurrence carries an explicit topic assignment which is redrawn,
// one occurrence at a time, from its conditional distribution given
// the current count tables.
type LDA struct {
	data     *corpus.Corpus
	vocab    *corpus.Vocabulary
	alpha    float64 // document topic mixture hyperparameter
	beta     float64 // topic word mixture hyperparameter
	topicNum uint32
	rng      *rand.Rand

	wt     *matrix.Uint32Matrix // word-topic count table
	dt     *matrix.Uint32Matrix // doc-topic count table
	wts    *matrix.Uint32Matrix // word-topic-sum count table
	words  [][]uint32           // vocabulary id of every word occurrence
	assign [][]uint32           // current topic of every word occurrence

	reportEvery int
	trace       []float64 // perplexity score of every evaluation

	// scratch for the per-occurrence conditional distribution
	weights []float64
	cumsum  []float64
}

// NewLDA creates an uncollapsed Gibbs sampler for the corpus, draws a
// uniformly random initial topic for every word occurrence and builds
// the count tables by tallying that draw.
func NewLDA(dat *corpus.Corpus, cfg Config) (*LDA, error) {
	if cfg.TopicNum < 1 {
		return nil, fmt.Errorf("invalid topic count %d", cfg.TopicNum)
	}

	vocab := corpus.BuildVocabulary(dat)
	if vocab.Size() == 0 {
		return nil, fmt.Errorf("empty vocabulary, corpus has no tokens")
	}

	alpha := cfg.Alpha
	if alpha <= 0 {
		alpha = 50.0 / float64(cfg.TopicNum)
	}
	beta := cfg.Beta
	if beta <= 0 {
		beta = 200.0 / float64(vocab.Size())
	}
	reportEvery := cfg.ReportEvery
	if reportEvery <= 0 {
		reportEvery = 25
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	this := &LDA{
		data:        dat,
		vocab:       vocab,
		alpha:       alpha,
		beta:        beta,
		topicNum:    cfg.TopicNum,
		rng:         rand.New(rand.NewSource(seed)),
		wt:          matrix.NewUint32Matrix(vocab.Size(), cfg.TopicNum),
		dt:          matrix.NewUint32Matrix(dat.DocNum(), cfg.TopicNum),
		wts:         matrix.NewUint32Matrix(cfg.TopicNum, uint32(1)),
		words:       make([][]uint32, dat.DocNum()),
		assign:      make([][]uint32, dat.DocNum()),
		reportEvery: reportEvery,
		weights:     make([]float64, cfg.TopicNum),
		cumsum:      make([]float64, cfg.TopicNum),
	}
	this.init()

	return this, nil
}

// init assigns a random topic to every word occurrence and tallies the
// sufficient statistics
func (this *LDA) init() {
	for d, doc := range this.data.Docs {
		this.words[d] = make([]uint32, len(doc))
		this.assign[d] = make([]uint32, len(doc))
		for i, token := range doc {
			w, _ := this.vocab.Id(token)
			k := uint32(this.rng.Intn(int(this.topicNum)))

			// update sufficient statistics
			this.wt.Incr(w, k, uint32(1))
			this.dt.Incr(uint32(d), k, uint32(1))
			this.wts.Incr(k, uint32(0), uint32(1))

			this.words[d][i] = w
			this.assign[d][i] = k
		}
	}
}

// conditional fills the scratch weight vector with the normalized
// conditional probability of every topic for one occurrence of word w
// in document doc. The caller must have removed the occurrence from
// the count tables already so the counts exclude it.
func (this *LDA) conditional(doc int, w uint32) []float64 {
	docSum := float64(matrix.Uint32VectorSum(this.dt.GetRow(uint32(doc))))
	vocabSize := float64(this.vocab.Size())

	for k := uint32(0); k < this.topicNum; k += 1 {
		wordPart := (float64(this.wt.Get(w, k)) + this.beta) /
			(float64(this.wts.Get(k, uint32(0))) + this.beta*vocabSize)
		docPart := (float64(this.dt.Get(uint32(doc), k)) + this.alpha) /
			(docSum + this.alpha*float64(this.topicNum))
		this.weights[k] = wordPart * docPart
	}

	// alpha, beta > 0 keeps every weight strictly positive, so the
	// normalizer cannot vanish
	floats.Scale(1/floats.Sum(this.weights), this.weights)
	return this.weights
}

// ResampleOne redraws the topic of the pos-th word occurrence of
// document doc. It removes the occurrence from the count tables,
// computes the conditional distribution over topics, draws a new topic
// by cumulative-sum inversion and adds the occurrence back under the
// new topic. The count table invariants hold again when it returns.
func (this *LDA) ResampleOne(doc, pos int) {
	w := this.words[doc][pos]
	k := this.assign[doc][pos]

	// decrease corresponding sufficient statistics
	this.wt.Decr(w, k, uint32(1))
	this.dt.Decr(uint32(doc), k, uint32(1))
	this.wts.Decr(k, uint32(0), uint32(1))

	// resample the topic
	p := this.conditional(doc, w)
	floats.CumSum(this.cumsum, p)
	u := this.rng.Float64() * this.cumsum[this.topicNum-1]
	for kidx := uint32(0); kidx < this.topicNum; kidx += 1 {
		if u < this.cumsum[kidx] {
			k = kidx
			break
		}
	}

	// increase corresponding sufficient statistics
	this.wt.Incr(w, k, uint32(1))
	this.dt.Incr(uint32(doc), k, uint32(1))
	this.wts.Incr(k, uint32(0), uint32(1))
	this.assign[doc][pos] = k
}

// Train runs nSweeps systematic-scan Gibbs sweeps: every sweep visits
// each word occurrence exactly once, in document order and position
// order, and resamples its topic. Every reportEvery-th sweep, starting
// with sweep 0, the in-sample perplexity is evaluated and logged.
func (this *LDA) Train(nSweeps int) error {
	if nSweeps < 0 {
		return fmt.Errorf("invalid sweep count %d", nSweeps)
	}

	for sweep := 0; sweep < nSweeps; sweep += 1 {
		if sweep%this.reportEvery == 0 {
			log.Infof("sweep %5d, perplexity %f", sweep, this.Perplexity())
		}

		for d := range this.words {
			for i := range this.words[d] {
				this.ResampleOne(d, i)
			}
		}
	}
	return nil
}

// compute the posterior point estimation of word-topic mixture
// beta (Dirichlet prior) + data -> phi
func (this *LDA) Phi() *matrix.Float64Matrix {
	phi := matrix.NewFloat64Matrix(this.vocab.Size(), this.topicNum)

	for k := uint32(0); k < this.topicNum; k += 1 {
		sum := float64(this.wts.Get(k, uint32(0)))

		for v := uint32(0); v < this.vocab.Size(); v += 1 {
			result := (float64(this.wt.Get(v, k)) + this.beta) /
				(sum + float64(this.vocab.Size())*this.beta)
			phi.Set(v, k, result)
		}
	}

	return phi
}

// compute the posterior point estimation of document-topic mixture
// alpha (Dirichlet prior) + data -> theta
func (this *LDA) Theta() *matrix.Float64Matrix {
	theta := matrix.NewFloat64Matrix(this.data.DocNum(), this.topicNum)

	for d := uint32(0); d < this.data.DocNum(); d += 1 {
		sum := float64(matrix.Uint32VectorSum(this.dt.GetRow(d)))

		for k := uint32(0); k < this.topicNum; k += 1 {
			result := (float64(this.dt.Get(d, k)) + this.alpha) /
				(sum + float64(this.topicNum)*this.alpha)
			theta.Set(d, k, result)
		}
	}

	return theta
}

// Perplexity computes the in-sample perplexity of the corpus under the
// current count tables, exp(-loglikelihood/N), and appends the score
// to the trace. Lower is a better fit.
func (this *LDA) Perplexity() float64 {
	phi := this.Phi()
	theta := this.Theta()

	sum := float64(0.0)
	total := 0
	for d := range this.words {
		for _, w := range this.words[d] {
			topicSum := float64(0.0)
			for k := uint32(0); k < this.topicNum; k += 1 {
				topicSum += phi.Get(w, k) * theta.Get(uint32(d), k)
			}
			sum += math.Log(topicSum)
			total += 1
		}
	}

	perplexity := math.Exp(-sum / float64(total))
	this.trace = append(this.trace, perplexity)
	return perplexity
}

// PerplexityTrace returns a copy of the scores of all evaluations so
// far, in evaluation order.
func (this *LDA) PerplexityTrace() []float64 {
	return append([]float64(nil), this.trace...)
}

// TopWords returns the n terms with the highest raw count in the given
// topic, ordered by descending count; terms with equal counts are
// ordered by ascending vocabulary id. If n exceeds the vocabulary size
// the whole vocabulary is returned.
func (this *LDA) TopWords(topic uint32, n int) ([]string, error) {
	if topic >= this.topicNum {
		return nil, fmt.Errorf("topic %d out of range [0, %d)", topic, this.topicNum)
	}

	counts := this.wt.GetCol(topic)
	ids := make([]uint32, len(counts))
	for i := range ids {
		ids[i] = uint32(i)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return counts[ids[i]] > counts[ids[j]]
	})

	if n > len(ids) {
		n = len(ids)
	}
	words := make([]string, 0, n)
	for _, id := range ids[:n] {
		words = append(words, this.vocab.Token(id))
	}
	return words, nil
}

// Assignments returns the current topic of every word occurrence,
// indexed by document and position. The returned slices are the
// sampler's own state and must not be mutated.
func (this *LDA) Assignments() [][]uint32 {
	return this.assign
}

// DocTopic returns the live doc-topic count table.
func (this *LDA) DocTopic() *matrix.Uint32Matrix {
	return this.dt
}

// WordTopic returns the live word-topic count table.
func (this *LDA) WordTopic() *matrix.Uint32Matrix {
	return this.wt
}

// Vocab returns the corpus vocabulary the sampler was built with.
func (this *LDA) Vocab() *corpus.Vocabulary {
	return this.vocab
}

// serialize word-topic distribution
func (this *LDA) SavePhi(fn string) error {
	return this.Phi().Serialize(fn + ".phi")
}

// serialize document-topic distribution
func (this *LDA) SaveTheta(fn string) error {
	return this.Theta().Serialize(fn + ".theta")
}

// serialize word-topic matrix
func (this *LDA) SaveWordTopic(fn string) error {
	return this.wt.Serialize(fn + ".wt")
}

// deserialize word-topic matrix
func (this *LDA) LoadWordTopic(fn string) error {
	return this.wt.Deserialize(fn + ".wt")
}
