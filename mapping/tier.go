package mapping

// Tier identifies one property-mapping tier. Tiers run in the order
// given to the Mapper; earlier tiers have priority over later ones.
type Tier string

const (
	// TierDirect copies SM keys whose names exactly match an FM
	// property definition.
	TierDirect Tier = "direct"
	// TierTemplateRule evaluates the template's mapping rules.
	TierTemplateRule Tier = "template-rule"
	// TierStatic applies the hand-curated static mapping table.
	TierStatic Tier = "static"
	// TierSemantic places remaining keys by similarity scoring.
	TierSemantic Tier = "semantic"
)

// DefaultTiers returns the standard tier priority order.
func DefaultTiers() []Tier {
	return []Tier{TierDirect, TierTemplateRule, TierStatic, TierSemantic}
}
