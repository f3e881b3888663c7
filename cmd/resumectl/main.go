// Command resumectl renders, publishes and maintains the résumé outside the
// web server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"resume-site/internal/shared/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Résumé site maintenance tool",
	Long:          "resumectl exports the résumé to PDF, Word or HTML, publishes downloads to object storage, verifies output and manages the profile database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default: ./resume-site.yaml if present)")
}

func loadConfig() (config.Config, error) {
	if configFile == "" {
		return config.Load(), nil
	}
	return config.LoadFile(configFile)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
