package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clindata/clindata/internal/config"
	"github.com/clindata/clindata/internal/pipeline"
	"github.com/clindata/clindata/internal/platform/bulk"
	"github.com/clindata/clindata/internal/platform/db"
	"github.com/clindata/clindata/internal/platform/reporting"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clindata",
		Short: "Synthetic hospital data generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func loadRunConfig(cmd *cobra.Command) (pipeline.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return pipeline.Config{}, "", err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("patients") {
		cfg.Patients, _ = cmd.Flags().GetInt("patients")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir, _ = cmd.Flags().GetString("out")
	}
	run, err := pipeline.FromEnv(cfg)
	if err != nil {
		return pipeline.Config{}, "", err
	}
	return run, cfg.OutputDir, nil
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "Override the run seed")
	cmd.Flags().Int("patients", 0, "Override the patient count")
	cmd.Flags().String("out", "", "Override the output directory")
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic data",
	}

	baseCmd := &cobra.Command{
		Use:   "base",
		Short: "Generate reference data, patients, and allergies",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, outDir, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger()

			runner := pipeline.NewRunner(run, logger)
			base, err := runner.GenerateBase(cmd.Context())
			if err != nil {
				return err
			}
			if err := bulk.WriteDir(outDir, pipeline.RecordSets(base, nil)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Printf("Wrote %d patients, %d providers, %d units, %d medications, %d allergies to %s\n",
				len(base.Patients), len(base.Ref.Providers), len(base.Ref.Units),
				len(base.Ref.Medications), len(base.Allergies), outDir)
			return nil
		},
	}
	addGenerateFlags(baseCmd)
	cmd.AddCommand(baseCmd)

	encountersCmd := &cobra.Command{
		Use:   "encounters",
		Short: "Generate the full data set including encounters and clinical events",
		Long: "Regenerates the base tables from the configured seed, then generates " +
			"encounters, diagnoses, medication administrations, lab results, vital " +
			"signs, and nursing assessments, optionally across parallel workers. " +
			"All tables are rewritten so that the output stays referentially " +
			"consistent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, outDir, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger()

			summary, err := pipeline.NewRunner(run, logger).Run(cmd.Context(), outDir)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s complete in %s (seed %d, %d workers)\n",
				summary.RunID, summary.Duration.Round(time.Millisecond), summary.Seed, summary.Workers)
			fmt.Printf("  patients:                   %d\n", summary.Patients)
			fmt.Printf("  encounters:                 %d\n", summary.Encounters)
			fmt.Printf("  diagnoses:                  %d\n", summary.Diagnoses)
			fmt.Printf("  medication administrations: %d\n", summary.MedAdministrations)
			fmt.Printf("  lab results:                %d\n", summary.LabResults)
			fmt.Printf("  vital signs:                %d\n", summary.VitalSigns)
			fmt.Printf("  nursing assessments:        %d\n", summary.Assessments)
			if skipped := summary.Skips.Total(); skipped > 0 {
				fmt.Printf("  skipped events (degenerate windows): %d\n", skipped)
			}
			return nil
		},
	}
	addGenerateFlags(encountersCmd)
	encountersCmd.Flags().Int("workers", 0, "Override the number of parallel workers")
	cmd.AddCommand(encountersCmd)

	return cmd
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk-load generated CSV files into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for load")
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = cfg.OutputDir
			}

			ctx := cmd.Context()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			results, err := bulk.NewLoader(pool).LoadDir(ctx, dir, pipeline.Tables())
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("%-28s %d rows\n", r.Table, r.Rows)
			}
			return nil
		},
	}
	cmd.Flags().String("dir", "", "Directory holding the CSV files (default OUTPUT_DIR)")
	return cmd
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [measure-id]",
		Short: "Evaluate reporting measures against the loaded data set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for report")
			}

			ctx := cmd.Context()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			ev := reporting.NewEvaluator(pool)
			var reports []*reporting.MeasureReport
			if len(args) == 1 {
				report, err := ev.Evaluate(ctx, args[0])
				if err != nil {
					return err
				}
				reports = []*reporting.MeasureReport{report}
			} else if reports, err = ev.EvaluateAll(ctx); err != nil {
				return err
			}

			for _, report := range reports {
				fmt.Printf("== %s (%s)\n", report.MeasureName, report.MeasureID)
				for _, row := range report.Results {
					fmt.Printf("   %v\n", row)
				}
			}
			return nil
		},
	}
}
