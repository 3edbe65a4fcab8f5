// internal/db/models.go
package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Activity struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}

// Availability is one bookable occurrence of an activity (a "slot").
type Availability struct {
	ID          int64
	ActivityID  int64
	LocalDate   string
	LocalTime   string
	VacancySold int64
	CreatedAt   time.Time
}

type ActivityBooking struct {
	ID              int64
	BookingRef      string
	AvailabilityID  int64
	ActivityID      int64
	TravelDate      string
	Status          string
	TotalPriceGross float64
	TotalPriceNet   float64
	Pax             int64
	CreatedAt       time.Time
}

type Guide struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	PaidInCash bool
	Active     bool
	CreatedAt  time.Time
}

// Contact is a non-guide staffing resource row (escort, headphone contact,
// printing contact). The three tables share one shape.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

type GuideAssignment struct {
	ID             int64
	GuideID        int64
	AvailabilityID int64
}

type EscortAssignment struct {
	ID             int64
	EscortID       int64
	AvailabilityID int64
}

type HeadphoneAssignment struct {
	ID             int64
	ContactID      int64
	AvailabilityID int64
}

type PrintingAssignment struct {
	ID             int64
	ContactID      int64
	AvailabilityID int64
}

type ServiceGroupMember struct {
	ID                int64
	ServiceGroupID    int64
	GuideAssignmentID int64
	IsPrimary         bool
}

type CostSeason struct {
	ID        int64
	Name      string
	StartDate string
	EndDate   string
	Position  int64
}

type SpecialCostDate struct {
	ID        int64
	LocalDate string
	Name      string
}

// GuideActivityCost is the legacy flat per-activity rate. A NULL guide id
// marks the global rate; a concrete guide id is the legacy guide rate.
type GuideActivityCost struct {
	ID         int64
	ActivityID int64
	GuideID    sql.NullInt64
	Cost       float64
}

type ActivitySeasonCost struct {
	ID         int64
	ActivityID int64
	SeasonID   int64
	Cost       float64
}

type ActivitySpecialDateCost struct {
	ID            int64
	ActivityID    int64
	SpecialDateID int64
	Cost          float64
}

type GuideSeasonCost struct {
	ID         int64
	GuideID    int64
	ActivityID int64
	SeasonID   int64
	Cost       float64
}

type GuideSpecialDateCost struct {
	ID            int64
	GuideID       int64
	ActivityID    int64
	SpecialDateID int64
	Cost          float64
}

type SpecialGuideRule struct {
	ID         int64
	GuideID    int64
	ActivityID int64
}

type ResourceRate struct {
	ID           int64
	ResourceType string
	ResourceID   int64
	Rate         float64
}

type AssignmentCostOverride struct {
	ID             int64
	AssignmentType string
	AssignmentID   int64
	Cost           float64
}

type Partner struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type VoucherExchange struct {
	ID          int64
	PartnerID   int64
	Reference   string
	Amount      float64
	ExchangedOn string
	CreatedAt   time.Time
}

type AuditEntry struct {
	ID        string
	ActorID   int64
	Action    string
	Entity    string
	EntityID  string
	CreatedAt time.Time
}
