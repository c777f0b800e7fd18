package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is a title held by the library together with its stock counters.
// TotalCopies and OnLoanCopies are only changed through the inventory ledger.
type Book struct {
	ID           uuid.UUID
	Title        string
	ISBN         string
	CategoryID   *uuid.UUID
	Author       *string
	Publisher    *string
	Position     *string
	TotalCopies  int
	OnLoanCopies int
	Price        decimal.Decimal
	Audit
}

// Available returns the number of copies on the shelf.
func (b *Book) Available() int {
	return b.TotalCopies - b.OnLoanCopies
}

// Stock is the locked view of a book's counters used by the ledger.
type Stock struct {
	BookID       uuid.UUID
	TotalCopies  int
	OnLoanCopies int
}

// Available returns TotalCopies - OnLoanCopies.
func (s Stock) Available() int {
	return s.TotalCopies - s.OnLoanCopies
}

// Valid reports whether the counters satisfy 0 <= on loan <= total.
func (s Stock) Valid() bool {
	return s.TotalCopies >= 0 && s.OnLoanCopies >= 0 && s.OnLoanCopies <= s.TotalCopies
}
