package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-site/internal/profiles"
	"resume-site/internal/shared/storage/db"
	"resume-site/resume/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store a résumé in the profile database",
	Long:  "Validates a YAML or JSON résumé (or the built-in default) and upserts it into resume_profiles under --slug.",
	RunE:  runSeed,
}

var (
	seedFile string
	seedSlug string
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to a YAML or JSON résumé (default: built-in résumé)")
	seedCmd.Flags().StringVar(&seedSlug, "slug", "", "Profile slug (default: PROFILE_SLUG)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var data model.ResumeData
	if seedFile != "" {
		data, err = profiles.LoadFile(seedFile)
	} else {
		data, err = profiles.Default()
	}
	if err != nil {
		return err
	}

	slug := seedSlug
	if slug == "" {
		slug = cfg.ProfileSlug
	}

	ctx := cmd.Context()
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return err
	}
	repo := &profiles.PGRepo{DB: sqlDB}
	if err := repo.Put(ctx, slug, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded profile %q (%s)\n", slug, data.Personal.Name)
	return nil
}
