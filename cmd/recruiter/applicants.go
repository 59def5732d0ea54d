package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hrml/recruiter-service/internal/model"
)

var applicantsFavorites bool

var applicantsCmd = &cobra.Command{
	Use:   "applicants <jobId>",
	Short: "List the applicants of a job",
	Long: `List the applicants who reacted to a vacancy, with their matching
score and whether they are a favorite.

With --favorites only the favorite applicants of the job are listed, and the
job is remembered as the last one viewed.`,
	Args: cobra.ExactArgs(1),
	RunE: runApplicants,
}

func init() {
	applicantsCmd.Flags().BoolVarP(&applicantsFavorites, "favorites", "f", false, "only favorite applicants")
	rootCmd.AddCommand(applicantsCmd)
}

func runApplicants(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	if applicantsFavorites {
		list, err := d.svc.SelectFavoriteJob(ctx, args[0])
		if err != nil {
			return err
		}
		printApplicants(list)
		return nil
	}

	detail, err := d.svc.JobDetail(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d reactions) %s\n\n", detail.Job.Title, detail.Job.Reactions, star(detail.Job.IsFavorite))
	printApplicants(detail.Applicants)
	return nil
}

func printApplicants(list []model.Applicant) {
	if len(list) == 0 {
		fmt.Println("No applicants found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSCORE\tFAVORITE")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\n", a.ID, a.Name, a.MatchingScore, star(a.IsFavorite))
	}
	w.Flush()
}
