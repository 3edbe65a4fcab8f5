// internal/scheduler/snapshot.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	appdb "tourdesk/internal/db"
	"tourdesk/internal/reports"
)

const snapshotTimeout = 5 * time.Minute

// RegisterProfitabilitySnapshot schedules a nightly run of the previous
// day's profitability report. The job is read-only and exists so operators
// get a daily margin line in the logs without opening the dashboard; a
// failed run is logged and retried at the next tick.
func RegisterProfitabilitySnapshot(database *appdb.DB, cronExpr string) error {
	if instance == nil {
		return fmt.Errorf("scheduler not initialized")
	}

	_, err := instance.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			runProfitabilitySnapshot(database)
		}),
		gocron.WithName("profitability-snapshot"),
	)
	if err != nil {
		return fmt.Errorf("registering profitability snapshot job: %w", err)
	}
	return nil
}

func runProfitabilitySnapshot(database *appdb.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	report, err := reports.Generate(ctx, database.Queries, reports.Params{
		StartDate: yesterday,
		EndDate:   yesterday,
		GroupBy:   reports.GroupByActivity,
	})
	if err != nil {
		log.Error().Err(err).Str("date", yesterday).Msg("Profitability snapshot failed")
		return
	}

	log.Info().
		Str("date", yesterday).
		Int("activities", len(report.Items)).
		Float64("revenue", report.Totals.Revenue).
		Float64("total_costs", report.Totals.TotalCosts).
		Float64("profit", report.Totals.Profit).
		Float64("margin", report.Totals.Margin).
		Msg("Profitability snapshot")
}
