// internal/reports/loader.go
package reports

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tourdesk/internal/db"
)

// Booking states that count as revenue. Everything else (cancelled, on
// hold, abandoned carts) is excluded at the read.
var reportableStatuses = []string{"CONFIRMED", "COMPLETED"}

// loadDataset issues every read the report needs concurrently and joins
// before building lookup maps. Any single failure fails the whole request;
// there is no partial-report mode.
func loadDataset(ctx context.Context, q *db.Queries, p Params) (*dataset, error) {
	var (
		bookings             []db.ActivityBooking
		slots                []db.Availability
		activities           []db.Activity
		guides               []db.Guide
		guideAssignments     []db.GuideAssignment
		escortAssignments    []db.EscortAssignment
		headphoneAssignments []db.HeadphoneAssignment
		printingAssignments  []db.PrintingAssignment
		groupMembers         []db.ServiceGroupMember
		seasons              []db.CostSeason
		specialDates         []db.SpecialCostDate
		legacyCosts          []db.GuideActivityCost
		seasonCosts          []db.ActivitySeasonCost
		specialCosts         []db.ActivitySpecialDateCost
		guideSeasonCosts     []db.GuideSeasonCost
		guideSpecialCosts    []db.GuideSpecialDateCost
		guideRules           []db.SpecialGuideRule
		rates                []db.ResourceRate
		overrides            []db.AssignmentCostOverride
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		bookings, err = loadBookings(ctx, q, p)
		return err
	})
	g.Go(func() (err error) {
		slots, err = loadAvailabilities(ctx, q, p)
		return err
	})
	g.Go(func() (err error) {
		activities, err = q.ListActivities(ctx)
		return err
	})
	g.Go(func() (err error) {
		guides, err = q.ListGuides(ctx)
		return err
	})
	g.Go(func() (err error) {
		guideAssignments, err = q.ListGuideAssignments(ctx)
		return err
	})
	g.Go(func() (err error) {
		escortAssignments, err = q.ListEscortAssignments(ctx)
		return err
	})
	g.Go(func() (err error) {
		headphoneAssignments, err = q.ListHeadphoneAssignments(ctx)
		return err
	})
	g.Go(func() (err error) {
		printingAssignments, err = q.ListPrintingAssignments(ctx)
		return err
	})
	g.Go(func() (err error) {
		groupMembers, err = q.ListServiceGroupMembers(ctx)
		return err
	})
	g.Go(func() (err error) {
		seasons, err = q.ListCostSeasons(ctx)
		return err
	})
	g.Go(func() (err error) {
		specialDates, err = q.ListSpecialCostDates(ctx)
		return err
	})
	g.Go(func() (err error) {
		legacyCosts, err = q.ListGuideActivityCosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		seasonCosts, err = q.ListActivitySeasonCosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		specialCosts, err = q.ListActivitySpecialDateCosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		guideSeasonCosts, err = q.ListGuideSeasonCosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		guideSpecialCosts, err = q.ListGuideSpecialDateCosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		guideRules, err = q.ListSpecialGuideRules(ctx)
		return err
	})
	g.Go(func() (err error) {
		rates, err = q.ListResourceRates(ctx)
		return err
	})
	g.Go(func() (err error) {
		overrides, err = q.ListAssignmentCostOverrides(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &dataset{
		bookings:              bookings,
		slots:                 make(map[int64]db.Availability, len(slots)),
		activityTitles:        make(map[int64]string, len(activities)),
		cashPaidGuides:        make(map[int64]bool),
		guideAssignments:      guideAssignments,
		escortAssignments:     escortAssignments,
		headphoneAssignments:  headphoneAssignments,
		printingAssignments:   printingAssignments,
		nonPrimaryAssignments: make(map[int64]bool),
		seasons:               seasons,
		specialDates:          make(map[string]int64, len(specialDates)),
		guideSpecialCosts:     make(map[guideSpecialKey]float64, len(guideSpecialCosts)),
		guideSeasonCosts:      make(map[guideSeasonKey]float64, len(guideSeasonCosts)),
		defaultSpecialCosts:   make(map[specialCostKey]float64, len(specialCosts)),
		defaultSeasonCosts:    make(map[seasonCostKey]float64, len(seasonCosts)),
		legacyGlobalCosts:     make(map[int64]float64),
		legacyGuideCosts:      make(map[guideActivityKey]float64),
		specialGuideRules:     make(map[guideActivityKey]bool, len(guideRules)),
		rates:                 make(map[rateKey]float64, len(rates)),
		overrides:             make(map[overrideKey]float64, len(overrides)),
	}

	for _, slot := range slots {
		d.slots[slot.ID] = slot
	}
	for _, activity := range activities {
		d.activityTitles[activity.ID] = activity.Title
	}
	for _, guide := range guides {
		if guide.PaidInCash {
			d.cashPaidGuides[guide.ID] = true
		}
	}
	for _, member := range groupMembers {
		if !member.IsPrimary {
			d.nonPrimaryAssignments[member.GuideAssignmentID] = true
		}
	}
	for _, date := range specialDates {
		d.specialDates[date.LocalDate] = date.ID
	}
	for _, cost := range guideSpecialCosts {
		d.guideSpecialCosts[guideSpecialKey{GuideID: cost.GuideID, ActivityID: cost.ActivityID, SpecialDateID: cost.SpecialDateID}] = cost.Cost
	}
	for _, cost := range guideSeasonCosts {
		d.guideSeasonCosts[guideSeasonKey{GuideID: cost.GuideID, ActivityID: cost.ActivityID, SeasonID: cost.SeasonID}] = cost.Cost
	}
	for _, cost := range specialCosts {
		d.defaultSpecialCosts[specialCostKey{ActivityID: cost.ActivityID, SpecialDateID: cost.SpecialDateID}] = cost.Cost
	}
	for _, cost := range seasonCosts {
		d.defaultSeasonCosts[seasonCostKey{ActivityID: cost.ActivityID, SeasonID: cost.SeasonID}] = cost.Cost
	}
	for _, cost := range legacyCosts {
		if cost.GuideID.Valid {
			d.legacyGuideCosts[guideActivityKey{GuideID: cost.GuideID.Int64, ActivityID: cost.ActivityID}] = cost.Cost
		} else {
			d.legacyGlobalCosts[cost.ActivityID] = cost.Cost
		}
	}
	for _, rule := range guideRules {
		d.specialGuideRules[guideActivityKey{GuideID: rule.GuideID, ActivityID: rule.ActivityID}] = true
	}
	for _, rate := range rates {
		d.rates[rateKey{ResourceType: rate.ResourceType, ResourceID: rate.ResourceID}] = rate.Rate
	}
	for _, override := range overrides {
		d.overrides[overrideKey{AssignmentType: override.AssignmentType, AssignmentID: override.AssignmentID}] = override.Cost
	}

	return d, nil
}

// loadBookings pages through the ranged booking read until a short page
// signals end of data.
func loadBookings(ctx context.Context, q *db.Queries, p Params) ([]db.ActivityBooking, error) {
	var all []db.ActivityBooking
	for offset := int64(0); ; offset += p.PageSize {
		page, err := q.ListBookingsInRange(ctx, db.ListBookingsInRangeParams{
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			Statuses:  reportableStatuses,
			Limit:     p.PageSize,
			Offset:    offset,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(len(page)) < p.PageSize {
			return all, nil
		}
	}
}

func loadAvailabilities(ctx context.Context, q *db.Queries, p Params) ([]db.Availability, error) {
	var all []db.Availability
	for offset := int64(0); ; offset += p.PageSize {
		page, err := q.ListAvailabilitiesInRange(ctx, db.ListAvailabilitiesInRangeParams{
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			Limit:     p.PageSize,
			Offset:    offset,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(len(page)) < p.PageSize {
			return all, nil
		}
	}
}
