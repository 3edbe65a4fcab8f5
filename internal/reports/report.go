// internal/reports/report.go
package reports

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"tourdesk/internal/db"
)

// Generate produces the profitability report for the given window. It loads
// an immutable snapshot, runs the revenue pass and the four cost
// aggregators, and finalizes totals. The computation is stateless across
// requests.
func Generate(ctx context.Context, q *db.Queries, p Params) (*Report, error) {
	if p.GroupBy == "" {
		p.GroupBy = GroupByActivity
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}

	data, err := loadDataset(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("loading report data: %w", err)
	}

	b := newBuilder(p.GroupBy, data)
	b.addBookingRevenue()
	b.addGuideCosts()
	b.addEscortCosts()
	b.addHeadphoneCosts()
	b.addPrintingCosts()
	return b.finish(), nil
}

type builder struct {
	groupBy string
	data    *dataset
	buckets map[string]*Bucket
	// Per-bucket (escort, date) pairs already charged.
	escortCharged map[string]map[escortDayKey]struct{}
}

func newBuilder(groupBy string, data *dataset) *builder {
	return &builder{
		groupBy:       groupBy,
		data:          data,
		buckets:       make(map[string]*Bucket),
		escortCharged: make(map[string]map[escortDayKey]struct{}),
	}
}

// bucketFor returns the bucket for a slot under the selected grouping,
// inserting a zeroed one on first touch. Buckets are never merged or split
// afterwards.
func (b *builder) bucketFor(slot db.Availability) *Bucket {
	key, label := b.bucketKey(slot)
	bucket, ok := b.buckets[key]
	if !ok {
		bucket = &Bucket{Key: key, Label: label}
		b.buckets[key] = bucket
	}
	return bucket
}

func (b *builder) bucketKey(slot db.Availability) (key, label string) {
	switch b.groupBy {
	case GroupByDate:
		return slot.LocalDate, slot.LocalDate
	case GroupByActivity:
		key = strconv.FormatInt(slot.ActivityID, 10)
		label = b.data.activityTitles[slot.ActivityID]
		if label == "" {
			label = "Unknown Activity"
		}
		return key, label
	default:
		key = strconv.FormatInt(slot.ID, 10)
		return key, "Slot " + key
	}
}

// finish derives per-bucket totals and margins, sorts by revenue descending,
// and computes grand totals field-wise over all buckets.
func (b *builder) finish() *Report {
	items := make([]*Bucket, 0, len(b.buckets))
	var totals Totals

	for _, bucket := range b.buckets {
		bucket.TotalCosts = bucket.GuideCosts + bucket.EscortCosts + bucket.HeadphoneCosts + bucket.PrintingCosts
		bucket.Profit = bucket.Revenue - bucket.TotalCosts
		if bucket.Revenue > 0 {
			bucket.Margin = bucket.Profit / bucket.Revenue * 100
		}
		items = append(items, bucket)

		totals.Revenue += bucket.Revenue
		totals.Bookings += bucket.Bookings
		totals.Pax += bucket.Pax
		totals.GuideCosts += bucket.GuideCosts
		totals.EscortCosts += bucket.EscortCosts
		totals.HeadphoneCosts += bucket.HeadphoneCosts
		totals.PrintingCosts += bucket.PrintingCosts
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].Key < items[j].Key
	})

	totals.TotalCosts = totals.GuideCosts + totals.EscortCosts + totals.HeadphoneCosts + totals.PrintingCosts
	totals.Profit = totals.Revenue - totals.TotalCosts
	if totals.Revenue > 0 {
		totals.Margin = totals.Profit / totals.Revenue * 100
	}

	return &Report{Items: items, Totals: totals}
}
