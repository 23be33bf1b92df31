// cmd/seeder/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/config"
	"github.com/unclebandit/creatorhub-backend/internal/db"
	"github.com/unclebandit/creatorhub-backend/internal/logging"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (e *env) connect(ctx context.Context) (*sql.DB, error) {
	return db.Open(ctx, e.cfg.DatabaseURL, e.logger)
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Prepare the creator hub database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			e.cfg, e.logger = cfg, logger
			return nil
		},
	}
	root.AddCommand(migrateCmd(e), creatorsCmd(e), testimonialsCmd(e))
	return root
}

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()
			return db.Migrate(cmd.Context(), conn, e.logger)
		},
	}
}

func creatorsCmd(e *env) *cobra.Command {
	var (
		count int
		rng   uint64
	)
	cmd := &cobra.Command{
		Use:   "creators",
		Short: "Insert a deterministic set of sample creators",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			conn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := &repository.CreatorRepository{DB: conn}
			n, err := repo.Seed(cmd.Context(), seed.Creators(count, rng))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d creators (seed %d)\n", n, rng)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 200, "number of creators to insert")
	cmd.Flags().Uint64Var(&rng, "seed", 1, "random seed; the same seed yields the same rows")
	return cmd
}

func testimonialsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "testimonials",
		Short: "Insert sample landing page testimonials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := &repository.TestimonialRepository{DB: conn}
			for _, t := range seed.Testimonials() {
				if err := repo.Create(cmd.Context(), t); err != nil {
					return fmt.Errorf("insert testimonial from %s: %w", t.Name, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeded testimonials")
			return nil
		},
	}
}
