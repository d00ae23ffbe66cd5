package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorpusLoad(t *testing.T) {
	r := strings.NewReader("apple banana apple\n\ncat dog\n")

	data := &Corpus{}
	assert.NoError(t, data.Load(r))

	assert.Equal(t, uint32(2), data.DocNum())
	assert.Equal(t, uint32(5), data.TokenNum())
	assert.Equal(t, []string{"apple", "banana", "apple"}, data.Docs[0])
	assert.Equal(t, []string{"cat", "dog"}, data.Docs[1])
}

func TestCorpusNew(t *testing.T) {
	data := New([][]string{{"a", "b"}, {"b", "c"}})

	assert.Equal(t, uint32(2), data.DocNum())
	assert.Equal(t, uint32(4), data.TokenNum())
}

func TestCorpusLoadFileMissing(t *testing.T) {
	data := &Corpus{}
	assert.Error(t, data.LoadFile("no/such/file"))
}
