package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <userId>",
	Short: "Show an applicant's CV contact details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := d.svc.Profile(ctx, args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Name:\t%s\n", p.Name)
		fmt.Fprintf(w, "E-mail:\t%s\n", p.Email)
		fmt.Fprintf(w, "City:\t%s\n", p.City)
		fmt.Fprintf(w, "Phone:\t%s\n", p.Phone)
		return w.Flush()
	},
}

var cvCmd = &cobra.Command{
	Use:   "cv <userId>",
	Short: "Download an applicant's CV as PDF",
	Long:  "Download an applicant's CV to DOWNLOAD_DIR as cv_<userId>.pdf.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.Close()

		path, err := d.svc.DownloadCV(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("CV saved to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd, cvCmd)
}
