package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/internal/service/circulation"
)

// loanFlags are shared by borrow and return.
type loanFlags struct {
	cardNo   string
	isbn     string
	quantity int
	operator string
	comment  string
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cardNo, "card", "", "reader card number (required)")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "book ISBN (required)")
	cmd.Flags().IntVarP(&f.quantity, "quantity", "n", 1, "number of copies")
	cmd.Flags().StringVar(&f.operator, "operator", "", "operator UUID recorded in the audit log (required)")
	cmd.Flags().StringVar(&f.comment, "comment", "", "free-text comment")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("isbn")
	_ = cmd.MarkFlagRequired("operator")
}

func (f *loanFlags) operatorID() (uuid.UUID, error) {
	id, err := uuid.Parse(f.operator)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("operator", "must be a UUID")
	}
	return id, nil
}

func (f *loanFlags) commentPtr() *string {
	if f.comment == "" {
		return nil
	}
	return &f.comment
}

func newBorrowCommand(st *rootState) *cobra.Command {
	var (
		flags   loanFlags
		dueDays int
	)

	cmd := &cobra.Command{
		Use:   "borrow",
		Short: "Lend copies of a book to a reader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			operatorID, err := flags.operatorID()
			if err != nil {
				return err
			}
			input := circulation.BorrowInput{
				CardNo:     flags.cardNo,
				ISBN:       flags.isbn,
				Quantity:   flags.quantity,
				OperatorID: operatorID,
				Comment:    flags.commentPtr(),
			}
			if cmd.Flags().Changed("due-days") {
				input.DueDays = &dueDays
			}

			return st.withBackend(cmd.Context(), func(b *backend) error {
				var lend domain.LendRecord
				err := b.Retry.Do(cmd.Context(), "borrow", func(ctx context.Context) error {
					var err error
					lend, err = b.Circulation.Borrow(ctx, input)
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "lent %d of %s to %s: lend %s due %s\n",
					lend.Quantity, flags.isbn, flags.cardNo, lend.ID, lend.DueDate.Format(dateLayout))
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&dueDays, "due-days", 0, "loan period in days (default from circulation.loan_period)")
	return cmd
}

func newReturnCommand(st *rootState) *cobra.Command {
	var flags loanFlags

	cmd := &cobra.Command{
		Use:   "return",
		Short: "Take back copies of a book from a reader, oldest loans first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			operatorID, err := flags.operatorID()
			if err != nil {
				return err
			}
			input := circulation.ReturnInput{
				CardNo:     flags.cardNo,
				ISBN:       flags.isbn,
				Quantity:   flags.quantity,
				OperatorID: operatorID,
				Comment:    flags.commentPtr(),
			}

			return st.withBackend(cmd.Context(), func(b *backend) error {
				var records []domain.ReturnRecord
				err := b.Retry.Do(cmd.Context(), "return", func(ctx context.Context) error {
					var err error
					records, err = b.Circulation.ReturnBook(ctx, input)
					return err
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, r := range records {
					fmt.Fprintf(out, "returned %d against lend %s\n", r.Quantity, r.LendID)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newLendCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "lend <id>",
		Short: "Show a lend with its returns and audit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return domain.NewValidationError("id", "must be a UUID")
			}

			return st.withBackend(cmd.Context(), func(b *backend) error {
				d, err := b.Circulation.LendDetail(cmd.Context(), id)
				if err != nil {
					return err
				}
				l := d.Lend
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "lend %s: %s, %d of %d returned, due %s\n",
					l.ID, l.Status, l.ReturnedQuantity, l.Quantity, l.DueDate.Format(dateLayout))
				if l.IsDeleted() {
					fmt.Fprintln(out, "deleted")
				}

				tw := newTabWriter(cmd)
				fmt.Fprintln(tw, "\nRETURNED\tQTY\tOPERATOR")
				for _, r := range d.Returns {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", r.CreatedAt.Format(time.RFC3339), r.Quantity, r.OperatorID)
				}
				fmt.Fprintln(tw, "\nAT\tACTION\tENTITY\tOPERATOR")
				for _, a := range d.History {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.CreatedAt.Format(time.RFC3339), a.Action, a.EntityType, a.OperatorID)
				}
				return tw.Flush()
			})
		},
	}
}
