package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-site/internal/bootstrap"
	"resume-site/internal/profiles"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render PDF and DOCX and upload them to object storage",
	Long:  "Renders both downloadable formats concurrently and stores them under <slug>/<batch>/ and <slug>/latest/ in the configured object store (OBJECT_STORE=local|s3).",
	RunE:  runPublish,
}

var publishSlug string

func init() {
	publishCmd.Flags().StringVar(&publishSlug, "slug", "", "Key prefix for stored documents (default: PROFILE_SLUG)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slug := publishSlug
	if slug == "" {
		slug = cfg.ProfileSlug
	}
	if slug == "" {
		slug = profiles.DefaultSlug
	}

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("object store: %w", err)
	}

	batch, err := app.Publisher(store).Publish(ctx, slug)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "batch %s\n", batch.ID)
	for _, pub := range batch.Publications {
		fmt.Fprintf(out, "  %-4s %8d bytes  %s  sha256:%s\n", pub.Format, pub.SizeBytes, pub.StorageKey, pub.SHA256[:12])
	}
	return nil
}
