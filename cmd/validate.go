package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the snapshot files for duplicate ids, bad coordinates and misfiled records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		issues, err := openStore().CheckAll(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, is := range issues {
			fmt.Fprintln(out, is.String())
		}
		if len(issues) > 0 {
			return eris.Errorf("validate: %d issues found", len(issues))
		}
		fmt.Fprintln(out, "snapshot ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
