package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hrml/recruiter-service/internal/model"
)

var (
	jobsQuery     string
	jobsFavorites bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List vacancies",
	Long: `List the vacancies on the HRML platform with their reaction counts.

Use --query to filter on title (case-insensitive) and --favorites to only
show favorite jobs.`,
	Args: cobra.NoArgs,
	RunE: runJobs,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "filter on job title")
	jobsCmd.Flags().BoolVarP(&jobsFavorites, "favorites", "f", false, "only favorite jobs")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	if jobsFavorites {
		jobs, err := d.svc.FavoriteJobs(ctx, jobsQuery)
		if err != nil {
			return err
		}
		printJobs(jobs)
		return nil
	}

	board, err := d.svc.Board(ctx, jobsQuery)
	if err != nil {
		return err
	}
	printJobs(board.Jobs)
	fmt.Printf("\n%d openings, %d responses\n", board.Openings, board.Responses)
	return nil
}

func printJobs(jobs []model.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tREACTIONS\tFAVORITE")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", j.ID, j.Title, j.Reactions, star(j.IsFavorite))
	}
	w.Flush()
}

func star(on bool) string {
	if on {
		return "★"
	}
	return ""
}
