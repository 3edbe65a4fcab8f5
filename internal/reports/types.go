// internal/reports/types.go
package reports

import (
	"tourdesk/internal/db"
)

// Grouping dimensions for the profitability report. Anything other than the
// two named values buckets by raw slot id.
const (
	GroupByActivity = "activity"
	GroupByDate     = "date"
)

const defaultPageSize = 1000

// Params selects the report window and grouping.
type Params struct {
	StartDate string
	EndDate   string
	GroupBy   string
	// PageSize bounds each bulk read from the store.
	PageSize int64
}

// Bucket is one row of the profitability report.
type Bucket struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Revenue        float64 `json:"revenue"`
	Bookings       int64   `json:"bookings"`
	Pax            int64   `json:"pax"`
	GuideCosts     float64 `json:"guide_costs"`
	EscortCosts    float64 `json:"escort_costs"`
	HeadphoneCosts float64 `json:"headphone_costs"`
	PrintingCosts  float64 `json:"printing_costs"`
	TotalCosts     float64 `json:"total_costs"`
	Profit         float64 `json:"profit"`
	Margin         float64 `json:"margin"`
}

// Totals aggregates every bucket; Margin is recomputed from the grand
// totals, not averaged from per-bucket margins.
type Totals struct {
	Revenue        float64 `json:"revenue"`
	Bookings       int64   `json:"bookings"`
	Pax            int64   `json:"pax"`
	GuideCosts     float64 `json:"guide_costs"`
	EscortCosts    float64 `json:"escort_costs"`
	HeadphoneCosts float64 `json:"headphone_costs"`
	PrintingCosts  float64 `json:"printing_costs"`
	TotalCosts     float64 `json:"total_costs"`
	Profit         float64 `json:"profit"`
	Margin         float64 `json:"margin"`
}

type Report struct {
	Items  []*Bucket `json:"items"`
	Totals Totals    `json:"totals"`
}

// Compound lookup keys. The store keeps these as separate columns; the
// engine never concatenates ids into strings.
type guideActivityKey struct {
	GuideID    int64
	ActivityID int64
}

type seasonCostKey struct {
	ActivityID int64
	SeasonID   int64
}

type specialCostKey struct {
	ActivityID    int64
	SpecialDateID int64
}

type guideSeasonKey struct {
	GuideID    int64
	ActivityID int64
	SeasonID   int64
}

type guideSpecialKey struct {
	GuideID       int64
	ActivityID    int64
	SpecialDateID int64
}

type rateKey struct {
	ResourceType string
	ResourceID   int64
}

type overrideKey struct {
	AssignmentType string
	AssignmentID   int64
}

type escortDayKey struct {
	EscortID int64
	Date     string
}

// dataset is the immutable snapshot one report request computes over.
type dataset struct {
	bookings []db.ActivityBooking
	slots    map[int64]db.Availability

	activityTitles map[int64]string
	cashPaidGuides map[int64]bool

	guideAssignments     []db.GuideAssignment
	escortAssignments    []db.EscortAssignment
	headphoneAssignments []db.HeadphoneAssignment
	printingAssignments  []db.PrintingAssignment

	// Guide assignment ids billed through a service-group primary; these
	// contribute zero so the group is charged once.
	nonPrimaryAssignments map[int64]bool

	// Seasons keep their configured order; overlap resolution is first
	// containing season in this order.
	seasons      []db.CostSeason
	specialDates map[string]int64 // calendar date -> special date id

	guideSpecialCosts   map[guideSpecialKey]float64
	guideSeasonCosts    map[guideSeasonKey]float64
	defaultSpecialCosts map[specialCostKey]float64
	defaultSeasonCosts  map[seasonCostKey]float64
	legacyGlobalCosts   map[int64]float64 // activity id -> cost (guide id NULL)
	legacyGuideCosts    map[guideActivityKey]float64
	specialGuideRules   map[guideActivityKey]bool

	rates     map[rateKey]float64
	overrides map[overrideKey]float64
}

// overrideFor returns the manual cost entered for one assignment, if any.
// Overrides beat every computed tier.
func (d *dataset) overrideFor(assignmentType string, assignmentID int64) (float64, bool) {
	cost, ok := d.overrides[overrideKey{AssignmentType: assignmentType, AssignmentID: assignmentID}]
	return cost, ok
}

func (d *dataset) rateFor(resourceType string, resourceID int64) float64 {
	return d.rates[rateKey{ResourceType: resourceType, ResourceID: resourceID}]
}
