package similarity

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"unicode"
)

// LexicalEmbedder is a pure Go fallback embedder using BM25 term
// weighting with feature hashing. It needs no external service and
// gives reasonable scores for property names that share terms
// ("input.key.fmt" vs "input.key.format"), though it cannot capture
// true semantic similarity the way a neural model does.
//
// Vectors are built by tokenizing the text, hashing each term to a
// fixed dimension, accumulating BM25 term scores, and L2 normalizing.
// Document statistics (IDF, average length) update incrementally as
// texts are embedded.
type LexicalEmbedder struct {
	dimensions int
	k1         float64 // term frequency saturation, typically 1.2-2.0
	b          float64 // length normalization, 0 none to 1 full

	mu             sync.Mutex
	docCount       int
	totalDocLength int
	termDocCount   map[string]int
}

// LexicalConfig configures the lexical embedder. Zero values select
// the defaults (384 dimensions, k1=1.5, b=0.75).
type LexicalConfig struct {
	Dimensions int
	K1         float64
	B          float64
}

// NewLexicalEmbedder creates a BM25-based embedder.
func NewLexicalEmbedder(cfg LexicalConfig) *LexicalEmbedder {
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 384 // match common neural embedding models
	}
	if cfg.K1 == 0 {
		cfg.K1 = 1.5
	}
	if cfg.B == 0 {
		cfg.B = 0.75
	}
	return &LexicalEmbedder{
		dimensions:   cfg.Dimensions,
		k1:           cfg.K1,
		b:            cfg.B,
		termDocCount: make(map[string]int),
	}
}

// Generate creates BM25 vectors for the given texts, updating document
// statistics as it goes.
func (l *LexicalEmbedder) Generate(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		tokens := tokenize(text)
		if len(tokens) == 0 {
			embeddings[i] = make([]float32, l.dimensions)
			continue
		}
		embeddings[i] = l.vectorize(tokens)
		l.updateStats(tokens)
	}
	return embeddings, nil
}

// Dimensions returns the dimensionality of embeddings.
func (l *LexicalEmbedder) Dimensions() int {
	return l.dimensions
}

// Model returns the model identifier.
func (l *LexicalEmbedder) Model() string {
	return fmt.Sprintf("bm25-go-k%.1f-b%.2f", l.k1, l.b)
}

// Close releases resources (no-op).
func (l *LexicalEmbedder) Close() error {
	return nil
}

func (l *LexicalEmbedder) vectorize(tokens []string) []float32 {
	termFreq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		termFreq[tok]++
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	avgDocLen := float64(len(tokens))
	if l.docCount > 0 {
		avgDocLen = float64(l.totalDocLength) / float64(l.docCount)
	}

	vector := make([]float32, l.dimensions)
	for term, tf := range termFreq {
		idf := 1.0
		if l.docCount > 0 {
			df := l.termDocCount[term]
			if df == 0 {
				df = 1 // smoothing for unseen terms
			}
			idf = math.Log((float64(l.docCount-df) + 0.5) / (float64(df) + 0.5))
			if idf < 0.01 {
				idf = 0.01
			}
		}

		numerator := float64(tf) * (l.k1 + 1)
		denominator := float64(tf) + l.k1*(1-l.b+l.b*(float64(len(tokens))/avgDocLen))
		vector[l.hashTerm(term)] += float32(idf * numerator / denominator)
	}

	l2Normalize(vector)
	return vector
}

func (l *LexicalEmbedder) updateStats(tokens []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.docCount++
	l.totalDocLength += len(tokens)

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; !ok {
			l.termDocCount[tok]++
			seen[tok] = struct{}{}
		}
	}
}

// hashTerm maps a term to a dimension using FNV-1a.
func (l *LexicalEmbedder) hashTerm(term string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return int(h.Sum32() % uint32(l.dimensions))
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-rune tokens.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() >= 2 {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			_, _ = current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// l2Normalize scales vector to unit length in place.
func l2Normalize(vector []float32) {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v * v)
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] /= float32(norm)
	}
}
