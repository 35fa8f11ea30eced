package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/analytics"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/storage"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/storage/csvsource"
)

const defaultDataPath = "data/WA_Fn-UseC_-Telco-Customer-Churn.csv"

// globals общие флаги команд.
type globals struct {
	dataPath string
	verbose  bool
	filter   models.FilterSpec
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "churnctl",
		Short:         "Churn analytics toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.dataPath, "data", defaultDataPath, "Path to the customers CSV file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&g.filter.TimePeriod, "time-period", "", "Time period filter, e.g. \"Last 90 days\"")
	pf.StringVar(&g.filter.Segment, "segment", "", "Segment filter, e.g. \"New Customers\"")
	pf.StringVar(&g.filter.Service, "service", "", "Internet service filter, e.g. \"Fiber optic\"")
	pf.StringVar(&g.filter.Contract, "contract", "", "Contract filter, e.g. \"Month-to-month\"")

	root.AddCommand(
		newStatsCmd(g),
		newChartCmd(g),
		newChartsCmd(),
		newFiltersCmd(g),
		newDashboardCmd(g),
		newPredictCmd(),
		newImportCmd(g),
		newTokenCmd(),
	)
	return root
}

func (g *globals) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// service загружает CSV и собирает фасад запросов над ним.
func (g *globals) service(ctx context.Context, cmd *cobra.Command) (*analytics.Service, error) {
	log := g.logger(cmd.ErrOrStderr())

	store, err := storage.New(ctx, csvsource.New(g.dataPath), log, nil)
	if err != nil {
		return nil, err
	}
	return analytics.NewService(store, log, nil), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
