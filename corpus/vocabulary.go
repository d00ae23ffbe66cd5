package corpus

// Vocabulary maintains the bijective mapping between tokens and dense
// ids in [0, V). Ids are assigned in first-occurrence order over the
// corpus, scanning documents in order and tokens within each document
// in order, so the mapping is deterministic for a given corpus.
// Immutable once built.
type Vocabulary struct {
	Tokens []string
	ids    map[string]uint32
}

// BuildVocabulary collects the distinct tokens of the corpus.
func BuildVocabulary(c *Corpus) *Vocabulary {
	v := &Vocabulary{
		ids: make(map[string]uint32),
	}
	for _, doc := range c.Docs {
		for _, token := range doc {
			if _, ok := v.ids[token]; !ok {
				v.ids[token] = uint32(len(v.Tokens))
				v.Tokens = append(v.Tokens, token)
			}
		}
	}
	return v
}

// Size returns the number of distinct tokens.
func (v *Vocabulary) Size() uint32 {
	return uint32(len(v.Tokens))
}

// Id returns the index of token and whether the token is known.
func (v *Vocabulary) Id(token string) (uint32, bool) {
	id, ok := v.ids[token]
	return id, ok
}

// Token returns the token with the given index. It panics if id is out
// of range.
func (v *Vocabulary) Token(id uint32) string {
	return v.Tokens[id]
}
