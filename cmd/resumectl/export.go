package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-site/internal/bootstrap"
	"resume-site/resume/contract"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the résumé to a file",
	Long:  "Renders the configured résumé as PDF, DOCX or HTML and writes it to --out, or to the attachment file name in the current directory.",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf, docx or html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := contract.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.Build(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	doc, err := app.Service.Export(cmd.Context(), format)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = doc.FileName
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %s)\n", out, len(doc.Body), doc.ContentType)
	return nil
}
