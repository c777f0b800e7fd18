// Package cli implements the libctl command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/library-backend/internal/app"
	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/internal/service/circulation"
)

type circulationService interface {
	Borrow(ctx context.Context, input circulation.BorrowInput) (domain.LendRecord, error)
	ReturnBook(ctx context.Context, input circulation.ReturnInput) ([]domain.ReturnRecord, error)
	LendDetail(ctx context.Context, id uuid.UUID) (domain.LendDetail, error)
}

type statsService interface {
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueEntry, error)
	Trend(ctx context.Context, r domain.DateRange) (domain.TrendSeries, error)
	GradeClassRollup(ctx context.Context, r domain.DateRange) ([]domain.RollupRow, error)
	CategoryValuation(ctx context.Context) ([]domain.CategoryValuationRow, error)
}

type retrier interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// backend is what the one-shot commands talk to.
type backend struct {
	Circulation circulationService
	Stats       statsService
	Retry       retrier
	Close       func()
}

type deps struct {
	loadConfig func(path string) (*config.Config, error)
	open       func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error)
}

func defaultDeps() deps {
	return deps{
		loadConfig: func(path string) (*config.Config, error) {
			if path != "" {
				return config.LoadFile(path)
			}
			return config.Load()
		},
		open: func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
			c, err := app.NewContainer(ctx, cfg, log)
			if err != nil {
				return nil, err
			}
			return &backend{Circulation: c.Circulation, Stats: c.Stats, Retry: c.Retry, Close: c.Close}, nil
		},
	}
}

// rootState is filled by the root command's PersistentPreRunE.
type rootState struct {
	deps       deps
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

// NewRootCommand builds the libctl command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultDeps())
}

func newRootCommand(d deps) *cobra.Command {
	st := &rootState{deps: d}

	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Library circulation service and operator tools",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := st.deps.loadConfig(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.log = app.NewLogger(cfg.Log)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "path to the YAML config (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newServeCommand(st),
		newMigrateCommand(st),
		newBorrowCommand(st),
		newReturnCommand(st),
		newLendCommand(st),
		newOverdueCommand(st),
		newTrendCommand(st),
		newRollupCommand(st),
		newValuationCommand(st),
	)
	return root
}

// withBackend opens the backend for the duration of fn.
func (st *rootState) withBackend(ctx context.Context, fn func(b *backend) error) error {
	b, err := st.deps.open(ctx, st.cfg, st.log)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	if b.Close != nil {
		defer b.Close()
	}
	return fn(b)
}
