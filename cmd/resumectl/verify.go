package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resume-site/internal/bootstrap"
	"resume-site/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that PDF and DOCX output is readable, stable and ordered",
	Long:  "Renders each downloadable format twice, extracts the text and checks that both runs match and that every section title appears in presentation order.",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	data, err := app.Provider.Load(ctx)
	if err != nil {
		return err
	}
	report, err := verify.Run(ctx, app.Service, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, fr := range report.Formats {
		status := "ok"
		if !fr.OK() {
			status = "FAIL: " + strings.Join(fr.Problems, "; ")
		}
		fmt.Fprintf(out, "%-4s %8d bytes  pages=%d  %s\n", fr.Format, fr.SizeBytes, fr.Pages, status)
	}
	if !report.OK() {
		return errors.New("verification failed")
	}
	return nil
}
