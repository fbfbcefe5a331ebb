package statement

import "peer_analysis/pkg/models"

// Estimation constants. These are industry-average fallbacks, not
// reconciliation: when they fire the result is approximate, and the item is
// flagged estimated in the set.
const (
	grossMarginEstimate = 0.30 // assumed gross margin when only revenue is known
	sellingSplit        = 0.60 // SG&A split assumption, selling : admin = 6 : 4
	adminSplit          = 0.40
)

// DeriveOptions controls producer-specific derivation steps.
type DeriveOptions struct {
	// SplitSGA enables the 6:4 selling/admin split when only the combined
	// figure is known. Only the XBRL document producer uses it.
	SplitSGA bool
}

// Derive fills canonical items absent from the mapped set by applying a fixed
// chain of accounting identities, falling back to the estimation ratios above.
// Each condition is checked independently, in order; a later rule may write
// over an earlier derived value when its own precondition also holds.
func Derive(set *models.ItemSet, opts DeriveOptions) {
	// Gross profit chain.
	switch {
	case set.Has(models.ItemRevenue) && set.Has(models.ItemCostOfRevenue) && !set.Has(models.ItemGrossProfit):
		set.SetEstimated(models.ItemGrossProfit,
			set.Get(models.ItemRevenue)-set.Get(models.ItemCostOfRevenue))
	case set.Has(models.ItemRevenue) && !set.Has(models.ItemGrossProfit):
		gp := set.Get(models.ItemRevenue) * grossMarginEstimate
		set.SetEstimated(models.ItemGrossProfit, gp)
		set.SetEstimated(models.ItemCostOfRevenue, set.Get(models.ItemRevenue)-gp)
	case set.Has(models.ItemGrossProfit) && !set.Has(models.ItemRevenue) && set.Has(models.ItemCostOfRevenue):
		set.SetEstimated(models.ItemRevenue,
			set.Get(models.ItemGrossProfit)+set.Get(models.ItemCostOfRevenue))
	}

	// Combined SG&A from its components, or the components from the combined
	// figure (document producer only).
	if set.Has(models.ItemSellingExpense) && set.Has(models.ItemAdminExpense) {
		set.SetEstimated(models.ItemSGA,
			set.Get(models.ItemSellingExpense)+set.Get(models.ItemAdminExpense))
	} else if opts.SplitSGA && set.Has(models.ItemSGA) &&
		!set.Has(models.ItemSellingExpense) && !set.Has(models.ItemAdminExpense) {
		sga := set.Get(models.ItemSGA)
		set.SetEstimated(models.ItemSellingExpense, sga*sellingSplit)
		set.SetEstimated(models.ItemAdminExpense, sga*adminSplit)
	}

	// Operating income from gross profit and SG&A.
	if set.Has(models.ItemGrossProfit) && set.Has(models.ItemSGA) && !set.Has(models.ItemOperatingIncome) {
		set.SetEstimated(models.ItemOperatingIncome,
			set.Get(models.ItemGrossProfit)-set.Get(models.ItemSGA))
	}
}
