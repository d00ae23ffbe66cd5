package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"

	log "github.com/golang/glog"
)

// Corpus holds an ordered sequence of tokenized documents. Document
// order and within-document token order carry no meaning for the
// sampler's mathematics, but both are preserved so that a
// (document, position) pair always names the same word occurrence
// across a run.
type Corpus struct {
	Docs [][]string
}

// New wraps already-tokenized documents. The slice is used as-is, not
// copied.
func New(docs [][]string) *Corpus {
	return &Corpus{Docs: docs}
}

// DocNum returns the number of documents.
func (this *Corpus) DocNum() uint32 {
	return uint32(len(this.Docs))
}

// TokenNum returns the total number of word occurrences.
func (this *Corpus) TokenNum() uint32 {
	n := uint32(0)
	for _, doc := range this.Docs {
		n += uint32(len(doc))
	}
	return n
}

// load training data from a reader, the format should be one document
// per line with tokens separated by whitespace. Blank lines are
// skipped.
func (this *Corpus) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		this.Docs = append(this.Docs, tokens)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Infof("number of documents %d", this.DocNum())
	log.Infof("number of tokens %d", this.TokenNum())
	return nil
}

// LoadFile reads training data from the named file in the Load format.
func (this *Corpus) LoadFile(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return this.Load(f)
}
