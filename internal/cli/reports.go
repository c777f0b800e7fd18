package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/library-backend/internal/domain"
)

const dateLayout = "2006-01-02"

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be YYYY-MM-DD")
	}
	return t, nil
}

type rangeFlags struct {
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day inclusive, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func (f *rangeFlags) dateRange() (domain.DateRange, error) {
	from, err := parseDate("from", f.from)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := parseDate("to", f.to)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.NewDateRange(from, to), nil
}

func newTabWriter(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func newOverdueCommand(st *rootState) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := time.Now().UTC()
			if asOf != "" {
				var err error
				if at, err = parseDate("as-of", asOf); err != nil {
					return err
				}
			}

			return st.withBackend(cmd.Context(), func(b *backend) error {
				entries, err := b.Stats.ListOverdue(cmd.Context(), at)
				if err != nil {
					return err
				}
				tw := newTabWriter(cmd)
				fmt.Fprintln(tw, "CARD\tREADER\tISBN\tTITLE\tQTY\tDUE\tDAYS")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%d\n",
						e.CardNo, e.ReaderName, e.ISBN, e.Title, e.Outstanding, e.DueDate.Format(dateLayout), e.DaysOverdue)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluate as of this day, YYYY-MM-DD (default now)")
	return cmd
}

func newTrendCommand(st *rootState) *cobra.Command {
	var flags rangeFlags

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Daily borrow and return counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := flags.dateRange()
			if err != nil {
				return err
			}
			return st.withBackend(cmd.Context(), func(b *backend) error {
				series, err := b.Stats.Trend(cmd.Context(), r)
				if err != nil {
					return err
				}
				tw := newTabWriter(cmd)
				fmt.Fprintln(tw, "DATE\tBORROWS\tRETURNS")
				for _, p := range series.Points {
					fmt.Fprintf(tw, "%s\t%d\t%d\n", p.Date.Format(dateLayout), p.Borrows, p.Returns)
				}
				return tw.Flush()
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newRollupCommand(st *rootState) *cobra.Command {
	var flags rangeFlags

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Loans per grade and class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := flags.dateRange()
			if err != nil {
				return err
			}
			return st.withBackend(cmd.Context(), func(b *backend) error {
				rows, err := b.Stats.GradeClassRollup(cmd.Context(), r)
				if err != nil {
					return err
				}
				tw := newTabWriter(cmd)
				fmt.Fprintln(tw, "GRADE\tCLASS\tACTIVE\tBORROWED\tRETURNED")
				for _, row := range rows {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
						row.GradeName, row.ClassName, row.ActiveLoans, row.HistoricalLoans, row.Returns)
				}
				return tw.Flush()
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newValuationCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "valuation",
		Short: "Stock value per top-level category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.withBackend(cmd.Context(), func(b *backend) error {
				rows, err := b.Stats.CategoryValuation(cmd.Context())
				if err != nil {
					return err
				}
				tw := newTabWriter(cmd)
				fmt.Fprintln(tw, "CATEGORY\tCOPIES\tVALUE")
				copies, value := 0, decimal.Zero
				for _, row := range rows {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", row.CategoryName, row.TotalCopies, row.TotalValue.StringFixed(2))
					copies += row.TotalCopies
					value = value.Add(row.TotalValue)
				}
				fmt.Fprintf(tw, "TOTAL\t%d\t%s\n", copies, value.StringFixed(2))
				return tw.Flush()
			})
		},
	}
}
