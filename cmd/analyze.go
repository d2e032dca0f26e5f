// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miyakoshi-dev/gh-profile-stats/internal/chart"
	"github.com/miyakoshi-dev/gh-profile-stats/internal/gateway"
	"github.com/miyakoshi-dev/gh-profile-stats/internal/report"
	"github.com/miyakoshi-dev/gh-profile-stats/internal/usecase"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [username]",
	Short: "Analyzes a GitHub user's profile and repositories",
	Long: `Fetches the profile and all public repositories of the given GitHub user,
prints a summary, exports a JSON report and renders a language pie chart
and a top-starred bar chart as PNG files.

When no username argument is given, it is read interactively from stdin.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		var username string
		if len(args) > 0 {
			username = strings.TrimSpace(args[0])
		}
		if username == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Enter GitHub username: ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if scanner.Scan() {
				username = strings.TrimSpace(scanner.Text())
			}
		}
		if username == "" {
			fmt.Fprintln(os.Stderr, "Error: no username provided.")
			os.Exit(1)
		}

		topN, _ := cmd.Flags().GetInt("top")
		outDir, _ := cmd.Flags().GetString("out")

		// A missing .env file is fine; the token may come from the process
		// environment directly.
		if err := godotenv.Load(); err == nil {
			logger.Debug("Loaded environment from .env file.")
		}
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			logger.Warn("GITHUB_TOKEN is not set; requests are unauthenticated and subject to lower rate limits.")
		}

		// Inject dependencies and run the pipeline.
		githubGateway, err := gateway.New(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		exporter := report.NewExporter(outDir, logger)
		renderer := chart.NewRenderer(outDir, logger)
		analyzer := usecase.NewAnalyzer(githubGateway, exporter, renderer, cmd.OutOrStdout(), logger)

		if err := analyzer.Run(ctx, username, topN); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to analyze profile: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntP("top", "n", 5, "Number of top-starred repositories to include")
	analyzeCmd.Flags().StringP("out", "o", ".", "Directory to write the report and charts to")
}
