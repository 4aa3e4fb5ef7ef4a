package similarity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Provider scores the similarity of two short property texts in [0,1].
// The mapping engine depends only on this interface so the backend can
// be a neural model, a lexical fallback, or a test stub.
type Provider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Preloader is implemented by providers that can batch-compute
// embeddings up front. The orchestrator preloads template property
// texts once per template so per-connector scoring only hits the
// cache.
type Preloader interface {
	Preload(ctx context.Context, texts []string) error
}

// EmbedderProvider scores texts by embedding them and taking the
// cosine similarity, clamped to [0,1]. Embeddings are cached by
// content hash; the zero-value cache is process-local.
type EmbedderProvider struct {
	embedder Embedder
	cache    Cache
	logger   *slog.Logger
}

// ProviderOption configures an EmbedderProvider.
type ProviderOption func(*EmbedderProvider)

// WithCache replaces the default in-memory embedding cache.
func WithCache(cache Cache) ProviderOption {
	return func(p *EmbedderProvider) {
		p.cache = cache
	}
}

// WithProviderLogger sets the provider's logger.
func WithProviderLogger(logger *slog.Logger) ProviderOption {
	return func(p *EmbedderProvider) {
		p.logger = logger
	}
}

// NewEmbedderProvider wraps an embedder into a Provider.
func NewEmbedderProvider(embedder Embedder, opts ...ProviderOption) *EmbedderProvider {
	p := &EmbedderProvider{
		embedder: embedder,
		cache:    NewMemoryCache(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Similarity embeds both texts (cache-first) and returns their cosine
// similarity clamped to [0,1].
func (p *EmbedderProvider) Similarity(ctx context.Context, a, b string) (float64, error) {
	embeddings, err := p.embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	score := CosineSimilarity(embeddings[0], embeddings[1])
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return score, nil
}

// Preload embeds texts in one batch so later Similarity calls hit the
// cache.
func (p *EmbedderProvider) Preload(ctx context.Context, texts []string) error {
	_, err := p.embed(ctx, texts)
	return err
}

// embed returns one embedding per text, serving from the cache where
// possible and generating the rest in a single batch.
func (p *EmbedderProvider) embed(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	var missedIndexes []int
	var missedTexts []string

	for i, text := range texts {
		if cached, err := p.cache.Get(ctx, ContentHash(text)); err == nil {
			embeddings[i] = cached
			continue
		}
		missedIndexes = append(missedIndexes, i)
		missedTexts = append(missedTexts, text)
	}

	if len(missedTexts) == 0 {
		return embeddings, nil
	}

	generated, err := p.embedder.Generate(ctx, missedTexts)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}
	if len(generated) != len(missedTexts) {
		return nil, fmt.Errorf("embedder returned %d embeddings for %d texts", len(generated), len(missedTexts))
	}

	for i, embedding := range generated {
		embeddings[missedIndexes[i]] = embedding
		hash := ContentHash(missedTexts[i])
		if err := p.cache.Put(ctx, hash, embedding); err != nil {
			// Cache is best-effort.
			p.logger.Warn("embedding cache put failed", "hash", hash, "error", err)
		}
	}
	return embeddings, nil
}

// Close closes the underlying embedder.
func (p *EmbedderProvider) Close() error {
	return p.embedder.Close()
}

// NormalizeText builds the canonical text scored for a property:
// fields joined by spaces, lowercased, with dotted and underscored
// property names split into words.
func NormalizeText(fields ...string) string {
	joined := strings.ToLower(strings.Join(fields, " "))
	joined = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(joined)
	return strings.Join(strings.Fields(joined), " ")
}
