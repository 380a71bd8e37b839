package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sensei/internal/technique"
)

var techniquesCmd = &cobra.Command{
	Use:   "techniques",
	Short: "List the techniques that can be analyzed",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, t := range technique.All(cfg.Analysis.Lang()) {
			fmt.Fprintf(out, "%-12s  %s\n", t.ID, t.DisplayName)
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				fmt.Fprintf(out, "%-12s  %s\n\n", "", t.Focus)
			}
		}
		return nil
	},
}

func init() {
	techniquesCmd.Flags().BoolP("verbose", "v", false, "Show what each technique focuses on")
}
