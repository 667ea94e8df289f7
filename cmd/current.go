package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current analysis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		clearCurrent, _ := cmd.Flags().GetBool("clear")
		if clearCurrent {
			if err := env.Store.ClearCurrent(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "current analysis cleared")
			return nil
		}

		r, err := env.Store.CurrentAnalysis(ctx)
		if err != nil {
			return err
		}
		if r == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no current analysis")
			return nil
		}
		return renderTo(cmd, env.Store, r)
	},
}

func init() {
	addRenderFlags(currentCmd)
	currentCmd.Flags().Bool("clear", false, "clear the current analysis instead of showing it")
	rootCmd.AddCommand(currentCmd)
}
