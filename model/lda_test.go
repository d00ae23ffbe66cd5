package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"github.com/Ibrahemamer/Text-Analysis/corpus"
	"github.com/Ibrahemamer/Text-Analysis/matrix"
)

func tinyCorpus() *corpus.Corpus {
	return corpus.New([][]string{{"a", "b"}, {"b", "c"}})
}

// themedCorpus has nine documents drawn from three disjoint vocabulary
// blocks, so three topics separate cleanly.
func themedCorpus() *corpus.Corpus {
	fruit := []string{"apple", "banana", "orange", "apple", "banana", "orange"}
	beast := []string{"cat", "dog", "tiger", "cat", "dog", "tiger"}
	tool := []string{"hammer", "saw", "drill", "hammer", "saw", "drill"}
	return corpus.New([][]string{
		fruit, beast, tool,
		fruit, beast, tool,
		fruit, beast, tool,
	})
}

// checkCounts asserts the row-sum and corpus-total invariants of the
// count tables
func checkCounts(t *testing.T, this *LDA) {
	t.Helper()

	total := uint32(0)
	for d, doc := range this.data.Docs {
		rowSum := matrix.Uint32VectorSum(this.dt.GetRow(uint32(d)))
		assert.Equal(t, uint32(len(doc)), rowSum, "doc %d topic counts", d)
		total += rowSum
	}
	assert.Equal(t, this.data.TokenNum(), total)

	wtTotal := uint32(0)
	for w := uint32(0); w < this.vocab.Size(); w += 1 {
		wtTotal += matrix.Uint32VectorSum(this.wt.GetRow(w))
	}
	assert.Equal(t, this.data.TokenNum(), wtTotal)

	wtsTotal := matrix.Uint32VectorSum(this.wts.GetCol(0))
	assert.Equal(t, this.data.TokenNum(), wtsTotal)
}

func TestNewLDAInitialCounts(t *testing.T) {
	this, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 42})
	assert.NoError(t, err)

	assert.Equal(t, uint32(2), matrix.Uint32VectorSum(this.dt.GetRow(0)))
	assert.Equal(t, uint32(2), matrix.Uint32VectorSum(this.dt.GetRow(1)))

	wtTotal := uint32(0)
	for w := uint32(0); w < this.vocab.Size(); w += 1 {
		wtTotal += matrix.Uint32VectorSum(this.wt.GetRow(w))
	}
	assert.Equal(t, uint32(4), wtTotal)

	checkCounts(t, this)
}

func TestNewLDADefaults(t *testing.T) {
	this, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 1})
	assert.NoError(t, err)

	assert.Equal(t, 50.0/2, this.alpha)
	assert.Equal(t, 200.0/3, this.beta)
	assert.Equal(t, 25, this.reportEvery)
}

func TestNewLDAConfigErrors(t *testing.T) {
	_, err := NewLDA(tinyCorpus(), Config{TopicNum: 0})
	assert.Error(t, err)

	_, err = NewLDA(corpus.New(nil), Config{TopicNum: 2})
	assert.Error(t, err)

	this, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 1})
	assert.NoError(t, err)
	assert.Error(t, this.Train(-1))
}

func TestResampleOneKeepsInvariants(t *testing.T) {
	this, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 42})
	assert.NoError(t, err)

	idA, ok := this.vocab.Id("a")
	assert.True(t, ok)
	before := this.wt.GetRow(idA)

	this.ResampleOne(0, 0)
	checkCounts(t, this)

	// the single occurrence of "a" either stayed put or moved one
	// unit between the two topic columns
	after := this.wt.GetRow(idA)
	assert.Equal(t,
		matrix.Uint32VectorSum(before), matrix.Uint32VectorSum(after))
	for k := range before {
		diff := int64(after[k]) - int64(before[k])
		assert.LessOrEqual(t, diff, int64(1))
		assert.GreaterOrEqual(t, diff, int64(-1))
	}
}

func TestConditionalIsNormalized(t *testing.T) {
	this, err := NewLDA(themedCorpus(), Config{TopicNum: 3, Seed: 7})
	assert.NoError(t, err)

	for d := range this.words {
		p := this.conditional(d, this.words[d][0])
		assert.InDelta(t, 1.0, floats.Sum(p), 1e-9)
		for _, v := range p {
			assert.Greater(t, v, 0.0)
		}
	}
}

func TestTrainKeepsInvariants(t *testing.T) {
	this, err := NewLDA(themedCorpus(), Config{TopicNum: 3, Seed: 99, ReportEvery: 10})
	assert.NoError(t, err)

	assert.NoError(t, this.Train(20))
	checkCounts(t, this)
}

func TestTrainDeterminism(t *testing.T) {
	cfg := Config{TopicNum: 3, Seed: 1234, ReportEvery: 5}

	a, err := NewLDA(themedCorpus(), cfg)
	assert.NoError(t, err)
	b, err := NewLDA(themedCorpus(), cfg)
	assert.NoError(t, err)

	assert.Equal(t, a.Assignments(), b.Assignments())

	assert.NoError(t, a.Train(20))
	assert.NoError(t, b.Train(20))

	assert.Equal(t, a.Assignments(), b.Assignments())
	assert.Equal(t, a.PerplexityTrace(), b.PerplexityTrace())
}

func TestPerplexityTrace(t *testing.T) {
	this, err := NewLDA(themedCorpus(), Config{TopicNum: 3, Seed: 5})
	assert.NoError(t, err)

	first := this.Perplexity()
	second := this.Perplexity()

	trace := this.PerplexityTrace()
	assert.Equal(t, []float64{first, second}, trace)
	for _, p := range trace {
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
		assert.Greater(t, p, 0.0)
	}
}

func TestTopWords(t *testing.T) {
	this, err := NewLDA(themedCorpus(), Config{TopicNum: 3, Seed: 11})
	assert.NoError(t, err)

	// force "apple" to dominate topic 0 by raw count
	idApple, ok := this.vocab.Id("apple")
	assert.True(t, ok)
	this.wt.Incr(idApple, 0, uint32(100))

	words, err := this.TopWords(0, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"apple"}, words)
}

func TestTopWordsTieBreakAndTruncation(t *testing.T) {
	this, err := NewLDA(corpus.New([][]string{{"a", "b"}}), Config{TopicNum: 1, Seed: 3})
	assert.NoError(t, err)

	// equal counts fall back to ascending vocabulary order
	words, err := this.TopWords(0, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)

	// n beyond the vocabulary size truncates instead of erroring
	words, err = this.TopWords(0, 10)
	assert.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestTopWordsBadTopic(t *testing.T) {
	this, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 3})
	assert.NoError(t, err)

	_, err = this.TopWords(2, 1)
	assert.Error(t, err)
}

func TestTrainConvergenceTrend(t *testing.T) {
	this, err := NewLDA(themedCorpus(), Config{TopicNum: 3, Seed: 2024})
	assert.NoError(t, err)

	assert.NoError(t, this.Train(500))

	trace := this.PerplexityTrace()
	assert.Equal(t, 20, len(trace))
	for _, p := range trace {
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
		assert.Greater(t, p, 0.0)
	}

	// the fit should not get worse on average as sampling proceeds;
	// this is a trend check, individual sweeps may fluctuate
	half := len(trace) / 2
	firstMean := floats.Sum(trace[:half]) / float64(half)
	secondMean := floats.Sum(trace[half:]) / float64(len(trace)-half)
	assert.LessOrEqual(t, secondMean, firstMean*1.05)
}

func TestPhiThetaNormalized(t *testing.T) {
	this, err := NewLDA(themedCorpus(), Config{TopicNum: 3, Seed: 6})
	assert.NoError(t, err)

	phi := this.Phi()
	for k := uint32(0); k < this.topicNum; k += 1 {
		colSum := 0.0
		for w := uint32(0); w < this.vocab.Size(); w += 1 {
			colSum += phi.Get(w, k)
		}
		assert.InDelta(t, 1.0, colSum, 1e-9, "phi column %d", k)
	}

	theta := this.Theta()
	for d := uint32(0); d < this.data.DocNum(); d += 1 {
		assert.InDelta(t, 1.0, floats.Sum(theta.GetRow(d)), 1e-9, "theta row %d", d)
	}
}

func TestSaveLoadWordTopic(t *testing.T) {
	this, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 17})
	assert.NoError(t, err)

	fn := t.TempDir() + "/model"
	assert.NoError(t, this.SaveWordTopic(fn))

	other, err := NewLDA(tinyCorpus(), Config{TopicNum: 2, Seed: 99})
	assert.NoError(t, err)
	assert.NoError(t, other.LoadWordTopic(fn))
	assert.Equal(t, this.wt, other.wt)
}

func TestModelRegistry(t *testing.T) {
	ctor, err := GetModel("lda")
	assert.NoError(t, err)

	m, err := ctor(tinyCorpus(), Config{TopicNum: 2, Seed: 8})
	assert.NoError(t, err)
	assert.NoError(t, m.Train(2))

	_, err = GetModel("nonsense")
	assert.Error(t, err)
}
