// Package overdue selects overdue loans and groups them by age. It is pure:
// callers supply the lend records and the reference instant.
package overdue

import (
	"time"

	"github.com/heartmarshall/library-backend/internal/domain"
)

const day = 24 * time.Hour

// Bucket boundaries, in days overdue.
const (
	monthDays    = 30
	halfYearDays = 180
	yearDays     = 365
)

// Evaluate returns the active, non-deleted lends whose due date is strictly
// before asOf, in input order. A loan due exactly at asOf is not overdue.
func Evaluate(asOf time.Time, lends []domain.LendRecord) []domain.LendRecord {
	var out []domain.LendRecord
	for i := range lends {
		if lends[i].IsOverdue(asOf) {
			out = append(out, lends[i])
		}
	}
	return out
}

// DaysOverdue returns the number of whole days between the due date and asOf.
func DaysOverdue(asOf, due time.Time) int {
	if !due.Before(asOf) {
		return 0
	}
	return int(asOf.Sub(due) / day)
}

// Bucketize counts the overdue lends by how long they have been overdue.
func Bucketize(asOf time.Time, lends []domain.LendRecord) domain.OverdueBuckets {
	var b domain.OverdueBuckets
	for _, l := range Evaluate(asOf, lends) {
		switch d := DaysOverdue(asOf, l.DueDate); {
		case d < monthDays:
			b.UnderMonth++
		case d < halfYearDays:
			b.MonthToHalfYear++
		case d < yearDays:
			b.HalfYearToYear++
		default:
			b.OverYear++
		}
	}
	return b
}
