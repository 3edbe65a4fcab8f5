// internal/reports/aggregate.go
package reports

import (
	"tourdesk/internal/db"
)

// The four resource aggregators. Each walks its assignment rows, drops rows
// whose slot is not in the loaded range (or is a dangling reference), and
// adds its cost contribution to the matching bucket.

func (b *builder) addBookingRevenue() {
	for _, booking := range b.data.bookings {
		slot, ok := b.data.slots[booking.AvailabilityID]
		if !ok {
			// Stale or out-of-range slot reference; skip the row
			// rather than fail the report.
			continue
		}
		bucket := b.bucketFor(slot)
		revenue := booking.TotalPriceGross
		if revenue == 0 {
			// Reseller-sourced bookings carry no gross price.
			revenue = booking.TotalPriceNet
		}
		bucket.Revenue += revenue
		bucket.Bookings++
		bucket.Pax += booking.Pax
	}
}

func (b *builder) addGuideCosts() {
	for _, assignment := range b.data.guideAssignments {
		slot, ok := b.data.slots[assignment.AvailabilityID]
		if !ok {
			continue
		}
		if b.data.cashPaidGuides[assignment.GuideID] {
			continue
		}
		if b.data.nonPrimaryAssignments[assignment.ID] {
			// Billed once through the service group's primary.
			continue
		}

		cost, ok := b.data.overrideFor(db.ResourceGuide, assignment.ID)
		if !ok {
			cost = b.data.resolveGuideCost(slot.ActivityID, slot.LocalDate, assignment.GuideID)
		}
		b.bucketFor(slot).GuideCosts += cost
	}
}

// addEscortCosts charges each escort at most once per calendar date within a
// bucket, however many slots they cover that day.
func (b *builder) addEscortCosts() {
	for _, assignment := range b.data.escortAssignments {
		slot, ok := b.data.slots[assignment.AvailabilityID]
		if !ok {
			continue
		}
		bucket := b.bucketFor(slot)

		day := escortDayKey{EscortID: assignment.EscortID, Date: slot.LocalDate}
		charged := b.escortCharged[bucket.Key]
		if charged == nil {
			charged = make(map[escortDayKey]struct{})
			b.escortCharged[bucket.Key] = charged
		}
		if _, seen := charged[day]; seen {
			continue
		}
		charged[day] = struct{}{}

		cost, ok := b.data.overrideFor(db.ResourceEscort, assignment.ID)
		if !ok {
			cost = b.data.rateFor(db.ResourceEscort, assignment.EscortID)
		}
		bucket.EscortCosts += cost
	}
}

func (b *builder) addHeadphoneCosts() {
	for _, assignment := range b.data.headphoneAssignments {
		slot, ok := b.data.slots[assignment.AvailabilityID]
		if !ok {
			continue
		}

		cost, ok := b.data.overrideFor(db.ResourceHeadphone, assignment.ID)
		if !ok {
			// Per-pax scaling against the slot's sold seats.
			cost = b.data.rateFor(db.ResourceHeadphone, assignment.ContactID) * float64(slot.VacancySold)
		}
		b.bucketFor(slot).HeadphoneCosts += cost
	}
}

func (b *builder) addPrintingCosts() {
	for _, assignment := range b.data.printingAssignments {
		slot, ok := b.data.slots[assignment.AvailabilityID]
		if !ok {
			continue
		}

		cost, ok := b.data.overrideFor(db.ResourcePrinting, assignment.ID)
		if !ok {
			cost = b.data.rateFor(db.ResourcePrinting, assignment.ContactID) * float64(slot.VacancySold)
		}
		b.bucketFor(slot).PrintingCosts += cost
	}
}
