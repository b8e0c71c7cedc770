package main

import (
	"io"
	"strings"

	"emploiplus/internal/database/migration"
	"emploiplus/internal/repository"
	"emploiplus/internal/usecase"
	"emploiplus/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pool, lg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		return migration.Runner{FS: migrations.FS, Logger: lg}.Run(cmd.Context(), pool.SQLDB())
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract known skills from text (reads stdin when no argument is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = string(b)
		}
		uc := usecase.NewMatchingUsecase(nil, nil, nil, nil, nil)
		return printJSON(cmd.OutOrStdout(), map[string]any{"skills": uc.ExtractSkills(text)})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <user-id> <job-id>",
	Short: "Compute the match score of a user for a job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, lg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := usecase.NewMatchingUsecase(
			repository.NewPostgresProfileRepository(pool),
			repository.NewPostgresJobRepository(pool),
			repository.NewPostgresJobRequirementRepository(pool),
			nil,
			lg,
		)
		res, err := uc.CalculateMatchScore(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <user-id> <job-id>",
	Short: "Build the career roadmap of a user towards a job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, lg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := usecase.NewRoadmapUsecase(
			repository.NewPostgresProfileRepository(pool),
			repository.NewPostgresJobRepository(pool),
			repository.NewPostgresJobRequirementRepository(pool),
			repository.NewPostgresFormationRepository(pool),
			lg,
		)
		res, err := uc.GenerateCareerRoadmap(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}
