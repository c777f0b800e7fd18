package circulation

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/heartmarshall/library-backend/internal/domain"
)

// portion is the part of a return applied to one lend record.
type portion struct {
	lend     domain.LendRecord
	quantity int
}

// apportion spreads qty over the outstanding lends, earliest due first, then
// earliest created, then lowest id. It fails without partial results when the
// reader has no outstanding copies or returns more than is outstanding.
func apportion(lends []domain.LendRecord, qty int) ([]portion, error) {
	open := make([]domain.LendRecord, 0, len(lends))
	outstanding := 0
	for _, l := range lends {
		if l.IsActive() && l.Outstanding() > 0 {
			open = append(open, l)
			outstanding += l.Outstanding()
		}
	}

	if len(open) == 0 {
		return nil, domain.ErrNoActiveLoan
	}
	if qty > outstanding {
		return nil, fmt.Errorf("returning %d, outstanding %d: %w", qty, outstanding, domain.ErrOverReturn)
	}

	slices.SortStableFunc(open, compareFIFO)

	var out []portion
	remaining := qty
	for _, l := range open {
		if remaining == 0 {
			break
		}
		take := min(l.Outstanding(), remaining)
		out = append(out, portion{lend: l, quantity: take})
		remaining -= take
	}
	return out, nil
}

func compareFIFO(a, b domain.LendRecord) int {
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}
