package circulation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
)

const maxCommentLen = 500

// BorrowInput holds the parameters for lending copies of a book.
type BorrowInput struct {
	CardNo     string
	ISBN       string
	Quantity   int
	OperatorID uuid.UUID
	// DueDays overrides the configured loan period when set.
	DueDays *int
	Comment *string
}

// Validate checks all fields and collects all errors.
func (i BorrowInput) Validate(rules config.CirculationConfig) error {
	errs := validateCommon(i.CardNo, i.ISBN, i.Quantity, i.OperatorID, i.Comment, rules)

	if i.DueDays != nil {
		if *i.DueDays < 1 {
			errs = append(errs, domain.FieldError{Field: "due_days", Message: "must be at least 1"})
		} else if *i.DueDays > rules.MaxLoanDays {
			errs = append(errs, domain.FieldError{Field: "due_days", Message: "exceeds the maximum loan period"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReturnInput holds the parameters for returning copies of a book.
type ReturnInput struct {
	CardNo     string
	ISBN       string
	Quantity   int
	OperatorID uuid.UUID
	Comment    *string
}

// Validate checks all fields and collects all errors.
func (i ReturnInput) Validate(rules config.CirculationConfig) error {
	errs := validateCommon(i.CardNo, i.ISBN, i.Quantity, i.OperatorID, i.Comment, rules)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateCommon(cardNo, isbn string, qty int, operatorID uuid.UUID, comment *string, rules config.CirculationConfig) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(cardNo) == "" {
		errs = append(errs, domain.FieldError{Field: "card_no", Message: "required"})
	}
	if strings.TrimSpace(isbn) == "" {
		errs = append(errs, domain.FieldError{Field: "isbn", Message: "required"})
	}
	if qty < 1 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be at least 1"})
	} else if qty > rules.MaxQuantityPerRequest {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "exceeds the per-request limit"})
	}
	if operatorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "operator_id", Message: "required"})
	}
	if comment != nil && utf8.RuneCountInString(strings.TrimSpace(*comment)) > maxCommentLen {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 500 characters"})
	}

	return errs
}
