package embed

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/kljensen/snowball"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
)

// DefaultHashingDim is the vector size of the hashing embedder.
const DefaultHashingDim = 512

// Hashing is a deterministic, offline embedder. Each content word is stemmed
// and hashed into a signed bucket; adjacent stem pairs add a weaker
// feature. Vectors are L2-normalized so cosine similarity reflects stem
// overlap.
type Hashing struct {
	dim       int
	language  string
	tokenizer *ingest.Tokenizer
}

// NewHashing creates a hashing embedder. language is a snowball language
// name ("french", "english"); dim <= 0 uses DefaultHashingDim.
func NewHashing(dim int, language string, tokenizer *ingest.Tokenizer) *Hashing {
	if dim <= 0 {
		dim = DefaultHashingDim
	}
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(nil)
	}
	return &Hashing{dim: dim, language: language, tokenizer: tokenizer}
}

// ModelName implements Named.
func (h *Hashing) ModelName() string {
	return fmt.Sprintf("hashing-%s-%d", h.language, h.dim)
}

// Embed implements Embedder. It never fails; empty text yields a zero vector.
func (h *Hashing) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)

	tokens := h.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		// Phrases made only of stopwords still need a direction.
		tokens = h.tokenizer.Words(text)
	}

	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = Stem(tok, h.language)
		h.add(vec, stems[i], 1)
	}
	for i := 0; i+1 < len(stems); i++ {
		h.add(vec, stems[i]+" "+stems[i+1], 0.5)
	}

	return normalizeL2(vec), nil
}

// EmbedBatch implements BatchEmbedder.
func (h *Hashing) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (h *Hashing) add(vec []float32, feature string, weight float32) {
	sum := xxhash.Sum64String(feature)
	idx := int(sum % uint64(h.dim))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// Stem returns the snowball stem of word, or word itself when the language
// is not supported by snowball.
func Stem(word, language string) string {
	if language == "" {
		return word
	}
	stemmed, err := snowball.Stem(word, language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}
