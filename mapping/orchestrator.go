package mapping

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360/connectmap/connector"
	"github.com/c360/connectmap/errors"
	"github.com/c360/connectmap/metric"
	"github.com/c360/connectmap/similarity"
	"github.com/c360/connectmap/template"
)

// Default mapper tuning.
const (
	// DefaultThreshold is the minimum similarity score the semantic
	// tier accepts.
	DefaultThreshold = 0.70
	// DefaultWorkers bounds concurrent connector mappings in MapAll.
	DefaultWorkers = 4
)

// Mapper translates self-managed connector configs into their
// fully-managed equivalents. A Mapper is safe for concurrent use.
type Mapper struct {
	catalog   *template.Catalog
	registry  *template.TransformRegistry
	provider  similarity.Provider
	threshold float64
	tiers     []Tier
	workers   int
	logger    *slog.Logger
	metrics   *metric.Metrics
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithSimilarityProvider enables the semantic tier. Without a provider
// the tier is skipped and unmatched keys surface as unmapped.
func WithSimilarityProvider(p similarity.Provider) Option {
	return func(m *Mapper) {
		m.provider = p
	}
}

// WithTransformRegistry sets the fallback supported-transform registry.
func WithTransformRegistry(r *template.TransformRegistry) Option {
	return func(m *Mapper) {
		m.registry = r
	}
}

// WithThreshold overrides the semantic acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(m *Mapper) {
		m.threshold = threshold
	}
}

// WithTiers overrides the tier priority order.
func WithTiers(tiers []Tier) Option {
	return func(m *Mapper) {
		m.tiers = tiers
	}
}

// WithWorkers bounds MapAll concurrency.
func WithWorkers(workers int) Option {
	return func(m *Mapper) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

// WithLogger sets the mapper's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// WithMetrics enables metric recording.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(m *Mapper) {
		m.metrics = metrics
	}
}

// New creates a Mapper over a template catalog.
func New(catalog *template.Catalog, opts ...Option) *Mapper {
	m := &Mapper{
		catalog:   catalog,
		threshold: DefaultThreshold,
		tiers:     DefaultTiers(),
		workers:   DefaultWorkers,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapConnector maps one connector. It always returns a Result; any
// internal failure is converted into an unsuccessful result rather
// than propagated, so one bad connector never aborts a batch.
func (m *Mapper) MapConnector(ctx context.Context, conn connector.Connector) (res *Result) {
	runID := uuid.NewString()
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			m.logger.Error("Recovered from panic while mapping connector",
				"connector", conn.Name, "run_id", runID, "panic", p)
			var errs errors.List
			errs.Add(errors.NewMappingFailure(conn.Name, p))
			res = &Result{
				Name:     conn.Name,
				RunID:    runID,
				SMConfig: conn.Config,
				Config:   connector.NewConfig(),
				Errors:   errs.Entries(),
			}
		}
		if m.metrics != nil {
			m.metrics.RecordMappingDuration(time.Since(start))
			status := metric.StatusSuccessful
			if !res.Successful() {
				status = metric.StatusUnsuccessful
			}
			m.metrics.RecordConnectorMapped(status)
		}
	}()

	class := conn.Config.Get(keyConnectorClass)
	tmpl, err := m.catalog.Resolve(class)
	if err != nil {
		m.logger.Warn("No template for connector", "connector", conn.Name, "class", class, "run_id", runID)
		var errs errors.List
		errs.Add(errors.NewTemplateNotFound(class))
		return &Result{
			Name:     conn.Name,
			RunID:    runID,
			SMConfig: conn.Config,
			Config:   connector.NewConfig(),
			Errors:   errs.Entries(),
		}
	}

	r := newRun(m, conn.Name, conn.Config, tmpl)
	m.seed(r)
	m.preload(ctx, r)

	for _, tier := range m.tiers {
		switch tier {
		case TierDirect:
			applyDirect(r)
		case TierTemplateRule:
			applyRules(r)
		case TierStatic:
			applyStatic(r)
		case TierSemantic:
			applySemantic(ctx, r)
		}
	}

	applyTransformFilter(r)
	validate(r)

	res = r.result(runID)
	m.logger.Info("Mapped connector",
		"connector", conn.Name,
		"run_id", runID,
		"successful", res.Successful(),
		"errors", len(res.Errors),
		"warnings", len(res.Warnings),
		"unmapped", len(res.Unmapped))
	return res
}

// seed writes the structural keys every FM config carries. The FM
// connector class is the template's plugin type, not the SM class
// string.
func (m *Mapper) seed(r *run) {
	r.setTarget("", keyConnectorClass, r.tmpl.PluginType())
	r.claimSource(keyConnectorClass)

	r.setTarget("", keyName, r.name)
	r.claimSource(keyName)

	tasksMax := "1"
	if v, ok := r.sm.Lookup(keyTasksMax); ok {
		tasksMax = v
		r.claimSource(keyTasksMax)
	}
	r.setTarget("", keyTasksMax, tasksMax)
}

// preload batch-computes embeddings for every text the semantic tier
// will score, so scoring itself only hits the cache. Best effort.
func (m *Mapper) preload(ctx context.Context, r *run) {
	preloader, ok := m.provider.(similarity.Preloader)
	if !ok {
		return
	}
	var texts []string
	for _, def := range r.tmpl.ConfigDefs {
		if !bool(def.Internal) {
			texts = append(texts, propertyText(def))
		}
	}
	for _, key := range r.sm.Keys() {
		if !structuralKey(key) {
			texts = append(texts, smKeyText(key))
		}
	}
	if len(texts) == 0 {
		return
	}
	if err := preloader.Preload(ctx, texts); err != nil {
		m.logger.Warn("Embedding preload failed", "connector", r.name, "error", err)
	}
}

// MapAll maps a batch of connectors concurrently, bounded by the
// worker limit. Results come back in input order and a failing
// connector never stops the batch.
func (m *Mapper) MapAll(ctx context.Context, conns []connector.Connector) []*Result {
	results := make([]*Result, len(conns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, conn := range conns {
		i, conn := i, conn
		g.Go(func() error {
			results[i] = m.MapConnector(ctx, conn)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
