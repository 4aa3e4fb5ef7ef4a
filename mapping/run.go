package mapping

import (
	"github.com/c360/connectmap/connector"
	"github.com/c360/connectmap/errors"
	"github.com/c360/connectmap/template"
)

// Structural FM keys exempt from config-def membership filtering.
const (
	keyConnectorClass = "connector.class"
	keyName           = "name"
	keyTasksMax       = "tasks.max"
)

// run holds the mutable state of mapping one connector. Tiers observe
// which targets and sources earlier tiers claimed through it.
type run struct {
	mapper *Mapper

	name string
	sm   *connector.Config
	tmpl *template.Template

	// out is the FM config under construction. A key present in out
	// is a claimed target; setTarget enforces write-once.
	out *connector.Config

	// claimedSources marks SM keys consumed by some tier.
	claimedSources map[string]struct{}

	// semanticRejected marks SM keys that already carry a
	// SemanticMatchFailure so the validator does not warn about them
	// a second time.
	semanticRejected map[string]struct{}

	// unmapped lists SM keys no tier placed, in declaration order.
	unmapped []string

	errs  errors.List
	warns errors.List
}

func newRun(m *Mapper, name string, sm *connector.Config, tmpl *template.Template) *run {
	return &run{
		mapper:           m,
		name:             name,
		sm:               sm,
		tmpl:             tmpl,
		out:              connector.NewConfig(),
		claimedSources:   make(map[string]struct{}),
		semanticRejected: make(map[string]struct{}),
	}
}

// setTarget writes a target FM key once. Returns false when a
// higher-priority tier already owns the key.
func (r *run) setTarget(tier Tier, key, value string) bool {
	if r.out.Has(key) {
		return false
	}
	r.out.Set(key, value)
	if r.mapper.metrics != nil && tier != "" {
		r.mapper.metrics.RecordTierMapping(string(tier))
	}
	return true
}

// targetClaimed reports whether an FM key is already written.
func (r *run) targetClaimed(key string) bool {
	return r.out.Has(key)
}

// claimSource marks an SM key as consumed.
func (r *run) claimSource(key string) {
	r.claimedSources[key] = struct{}{}
}

// sourceClaimed reports whether an SM key was consumed by some tier.
func (r *run) sourceClaimed(key string) bool {
	_, ok := r.claimedSources[key]
	return ok
}

// record routes an entry to the error or warning list by severity.
func (r *run) record(e errors.Entry) {
	if e.Code.Warning() {
		r.warns.Add(e)
	} else {
		r.errs.Add(e)
	}
	if r.mapper.metrics != nil {
		r.mapper.metrics.RecordEntry(e.Code.String())
	}
}

// structuralKey reports whether an SM or FM key is structural: always
// carried, never subject to config-def filtering or unmapped warnings.
func structuralKey(key string) bool {
	switch key {
	case keyConnectorClass, keyName, keyTasksMax:
		return true
	}
	return connector.IsChainKey(key)
}

// result freezes the run into an immutable Result.
func (r *run) result(runID string) *Result {
	res := &Result{
		Name:     r.name,
		RunID:    runID,
		SMConfig: r.sm,
		Config:   r.out,
		Errors:   r.errs.Entries(),
		Warnings: r.warns.Entries(),
		Unmapped: r.unmapped,
	}
	return res
}
