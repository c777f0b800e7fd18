package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of calendar days in UTC.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange truncates both ends to UTC midnight.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: TruncateDay(from), To: TruncateDay(to)}
}

// Days returns the number of calendar days covered, or 0 if To is before From.
func (r DateRange) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// End returns the exclusive upper bound: midnight after To.
func (r DateRange) End() time.Time {
	return r.To.AddDate(0, 0, 1)
}

// TruncateDay returns midnight UTC of t's UTC calendar day.
func TruncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayCount is a number of events on one UTC day.
type DayCount struct {
	Date  time.Time
	Count int
}

// TrendPoint is one day of the circulation trend.
type TrendPoint struct {
	Date    time.Time
	Borrows int
	Returns int
}

// TrendSeries is the zero-filled daily trend over a range.
type TrendSeries struct {
	Range  DateRange
	Points []TrendPoint
}

// RollupRow aggregates loans per grade and class.
type RollupRow struct {
	GradeID         uuid.UUID
	GradeName       string
	ClassID         uuid.UUID
	ClassName       string
	ActiveLoans     int
	HistoricalLoans int
	Returns         int
}

// CategoryValuationRow is the stock value of one top-level category.
// CategoryID is nil for books without a category.
type CategoryValuationRow struct {
	CategoryID   *uuid.UUID
	CategoryName string
	TotalCopies  int
	TotalValue   decimal.Decimal
}

// OverdueEntry is an overdue loan joined with display fields.
type OverdueEntry struct {
	LendID      uuid.UUID
	ReaderID    uuid.UUID
	CardNo      string
	ReaderName  string
	BookID      uuid.UUID
	ISBN        string
	Title       string
	Outstanding int
	BorrowedAt  time.Time
	DueDate     time.Time
	DaysOverdue int
}

// OverdueBuckets counts overdue loans by how long they have been overdue.
type OverdueBuckets struct {
	UnderMonth      int // less than 30 days
	MonthToHalfYear int // 30 to 180 days
	HalfYearToYear  int // 180 to 365 days
	OverYear        int // 365 days or more
}

// Total returns the number of overdue loans in all buckets.
func (b OverdueBuckets) Total() int {
	return b.UnderMonth + b.MonthToHalfYear + b.HalfYearToYear + b.OverYear
}

// PopularBook is a title ranked by total borrowed quantity.
type PopularBook struct {
	BookID   uuid.UUID
	Title    string
	Borrowed int
}

// LibraryTotals are the headline counters of the dashboard.
type LibraryTotals struct {
	CopiesOnShelf  int
	DistinctTitles int
	Readers        int
	ActiveReaders  int
}

// Dashboard bundles the overview figures.
type Dashboard struct {
	AsOf             time.Time
	Totals           LibraryTotals
	PopularBooks     []PopularBook
	Overdue          OverdueBuckets
	RecentUnreturned int
}
