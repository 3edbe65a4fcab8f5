// internal/reports/resolver.go
package reports

// Tiered guide cost resolution. Manual per-assignment overrides are checked
// by the aggregator before the resolver runs, so the chain below starts at
// the guide-specific special-date tier.

// costTier resolves one pricing source; ok reports whether the tier applies
// to the given (activity, date, guide).
type costTier func(d *dataset, activityID int64, date string, guideID int64) (amount float64, ok bool)

// guideCostTiers is evaluated in strict priority order; the first applicable
// tier wins.
var guideCostTiers = []costTier{
	guideSpecialDateTier,
	guideSeasonTier,
	defaultSpecialDateTier,
	defaultSeasonTier,
	legacyGlobalTier,
	legacyGuideTier,
}

// resolveGuideCost returns the cost owed for a guide's presence on a date,
// or zero when no tier matches.
func (d *dataset) resolveGuideCost(activityID int64, date string, guideID int64) float64 {
	for _, tier := range guideCostTiers {
		if amount, ok := tier(d, activityID, date, guideID); ok {
			return amount
		}
	}
	return 0
}

func (d *dataset) hasSpecialGuideRule(guideID, activityID int64) bool {
	return d.specialGuideRules[guideActivityKey{GuideID: guideID, ActivityID: activityID}]
}

// seasonFor returns the first season in configured order whose closed
// [start_date, end_date] interval contains the date.
func (d *dataset) seasonFor(date string) (int64, bool) {
	for _, season := range d.seasons {
		if season.StartDate <= date && date <= season.EndDate {
			return season.ID, true
		}
	}
	return 0, false
}

func (d *dataset) specialDateFor(date string) (int64, bool) {
	id, ok := d.specialDates[date]
	return id, ok
}

// Guide-specific pricing only applies to guides with an explicit special
// guide rule for the activity; without the rule the rows are inert.
func guideSpecialDateTier(d *dataset, activityID int64, date string, guideID int64) (float64, bool) {
	if guideID == 0 || !d.hasSpecialGuideRule(guideID, activityID) {
		return 0, false
	}
	specialDateID, ok := d.specialDateFor(date)
	if !ok {
		return 0, false
	}
	amount, ok := d.guideSpecialCosts[guideSpecialKey{GuideID: guideID, ActivityID: activityID, SpecialDateID: specialDateID}]
	return amount, ok
}

func guideSeasonTier(d *dataset, activityID int64, date string, guideID int64) (float64, bool) {
	if guideID == 0 || !d.hasSpecialGuideRule(guideID, activityID) {
		return 0, false
	}
	seasonID, ok := d.seasonFor(date)
	if !ok {
		return 0, false
	}
	amount, ok := d.guideSeasonCosts[guideSeasonKey{GuideID: guideID, ActivityID: activityID, SeasonID: seasonID}]
	return amount, ok
}

func defaultSpecialDateTier(d *dataset, activityID int64, date string, _ int64) (float64, bool) {
	specialDateID, ok := d.specialDateFor(date)
	if !ok {
		return 0, false
	}
	amount, ok := d.defaultSpecialCosts[specialCostKey{ActivityID: activityID, SpecialDateID: specialDateID}]
	return amount, ok
}

func defaultSeasonTier(d *dataset, activityID int64, date string, _ int64) (float64, bool) {
	seasonID, ok := d.seasonFor(date)
	if !ok {
		return 0, false
	}
	amount, ok := d.defaultSeasonCosts[seasonCostKey{ActivityID: activityID, SeasonID: seasonID}]
	return amount, ok
}

func legacyGlobalTier(d *dataset, activityID int64, _ string, _ int64) (float64, bool) {
	amount, ok := d.legacyGlobalCosts[activityID]
	return amount, ok
}

// legacyGuideTier predates the special-guide-rule gate and deliberately
// stays ungated, unlike the seasonal/special-date guide tiers.
func legacyGuideTier(d *dataset, activityID int64, _ string, guideID int64) (float64, bool) {
	if guideID == 0 {
		return 0, false
	}
	amount, ok := d.legacyGuideCosts[guideActivityKey{GuideID: guideID, ActivityID: activityID}]
	return amount, ok
}
