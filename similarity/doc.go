// Package similarity provides the pluggable similarity backend used by
// the semantic mapping tier.
//
// The mapping engine only sees the Provider interface: score two short
// property texts in [0,1]. The default implementation embeds texts with
// an Embedder and scores with cosine similarity, caching embeddings by
// content hash so template property texts are embedded once and reused
// across every connector of the same class.
//
// Two embedders ship with the package: an HTTP embedder for
// OpenAI-compatible embedding APIs (TEI, LocalAI, OpenAI) and a pure Go
// lexical BM25 embedder that needs no external service. Tests use a
// deterministic stub Provider instead.
package similarity
