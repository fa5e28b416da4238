package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gomonte/adapters/excel"
	"gomonte/adapters/postgres"
	"gomonte/app"
	"gomonte/domain/estimate"
	"gomonte/domain/sampler"
	"gomonte/internal/config"
	"gomonte/internal/report"
	"gomonte/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "gomonte",
		Short: "Adaptive parallel Monte Carlo estimation",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
		newExportCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		rtol      float64
		maxTrials int64
		batch     int
		workers   int
		seed      int64
		name      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one estimation to adaptive convergence",
		Long: `Sample the chosen random variable across parallel workers until the
relative standard error of the mean drops below --rtol, or --max-trials
is exceeded.

Example: gomonte run --rtol 0.005 --workers 8 --sampler exponential`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			params := estimate.Params{
				RTol:      cfg.Engine.RTol,
				MaxTrials: cfg.Engine.MaxTrials,
				BatchSize: cfg.Engine.BatchSize,
				Workers:   cfg.Engine.Workers,
				Seed:      seed,
				Sampler:   name,
			}
			if cmd.Flags().Changed("rtol") {
				params.RTol = rtol
			}
			if cmd.Flags().Changed("max-trials") {
				params.MaxTrials = maxTrials
			}
			if cmd.Flags().Changed("batch") {
				params.BatchSize = batch
			}
			if cmd.Flags().Changed("workers") {
				params.Workers = workers
			}

			repo, cleanup, err := openRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Println("--- Run parameters:")
			fmt.Printf("sampler: %s\n", params.Sampler)
			fmt.Printf("rtol: %e\n", params.RTol)
			fmt.Printf("maxtrials: %d\n", params.MaxTrials)
			fmt.Printf("nbatch: %d\n", params.BatchSize)
			fmt.Printf("workers: %d\n", params.Workers)

			record, err := app.NewEstimatorService(repo).Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			lo, hi := record.ConfidenceInterval(0.95)
			fmt.Printf("%d workers: %g (%g): %e s, %d trials\n",
				record.Workers, record.Mean, record.StdErr,
				record.Elapsed().Seconds(), record.Trials)
			fmt.Printf("95%% CI: [%g, %g]\n", lo, hi)
			return nil
		},
	}

	cmd.Flags().Float64Var(&rtol, "rtol", 0.01, "Relative tolerance on the standard error of the mean")
	cmd.Flags().Int64Var(&maxTrials, "max-trials", 1_000_000, "Trial cap")
	cmd.Flags().IntVar(&batch, "batch", 500, "Trials per batch before merging into shared sums")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (0 uses MC_WORKERS or NumCPU)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Master seed (0 derives from the clock)")
	cmd.Flags().StringVar(&name, "sampler", "uniform",
		fmt.Sprintf("Sampler name, one of %v", sampler.Names()))

	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored runs (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, cleanup, err := loadHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Printf("%-38s %-12s %-12s %-12s %-10s\n", "ID", "SAMPLER", "MEAN", "STDERR", "TRIALS")
			for _, record := range records {
				fmt.Printf("%-38s %-12s %-12.6f %-12.6f %-10d\n",
					record.ID, record.Sampler, record.Mean, record.StdErr, record.Trials)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export run history to an .xlsx workbook (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, cleanup, err := loadHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := excel.WriteHistory(out, records); err != nil {
				return err
			}
			fmt.Printf("Exported %d runs to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "runs.xlsx", "Output workbook path")
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the run-history report as markdown (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, cleanup, err := loadHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Print(report.Markdown(records))
			return nil
		},
	}
}

// openRepository connects the Postgres run store when DATABASE_URL is
// set; without it the run is not persisted.
func openRepository(ctx context.Context, cfg *config.Config) (ports.RunRepositoryPort, func(), error) {
	if cfg.Database.URL == "" {
		return nil, func() {}, nil
	}
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := postgres.NewRunRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

func loadHistory(ctx context.Context) ([]estimate.RunRecord, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.URL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required for run history")
	}
	repo, cleanup, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	records, err := repo.List(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return records, cleanup, nil
}
