// recruiter: HRML recruiter service
//
// Job board, applicant lists and favorites for recruiters on the HRML
// platform. Runs as an HTTP API (`recruiter serve`) or as one-shot commands:
//   - jobs / applicants        browse vacancies and their applicants
//   - favorite job|applicant   toggle favorites
//   - profile / cv             CV details and PDF download
//   - login / logout / whoami  remembered login state
//
// Favorites persist in Redis (default) or PostgreSQL; favorite changes are
// published to Redis when REDIS_URL is set.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "recruiter",
	Short:         "HRML recruiter service",
	Long:          "Browse HRML vacancies and applicants, keep favorites, and fetch CVs from the command line or over HTTP.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
