package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Toggle job and applicant favorites",
}

var favoriteJobCmd = &cobra.Command{
	Use:   "job <jobId>",
	Short: "Toggle a job favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		on, err := d.svc.ToggleJobFavorite(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Job %s %s favorites.\n", args[0], addedOrRemoved(on))
		return nil
	},
}

var favoriteApplicantCmd = &cobra.Command{
	Use:   "applicant <jobId> <applicantId>",
	Short: "Toggle an applicant favorite for a job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		on, err := d.svc.ToggleApplicantFavorite(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Applicant %s %s favorites of job %s.\n", args[1], addedOrRemoved(on), args[0])
		return nil
	},
}

func init() {
	favoriteCmd.AddCommand(favoriteJobCmd, favoriteApplicantCmd)
	rootCmd.AddCommand(favoriteCmd)
}

func addedOrRemoved(on bool) string {
	if on {
		return "added to"
	}
	return "removed from"
}
