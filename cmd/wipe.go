package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all analyses and reset settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return eris.New("wipe deletes all data; pass --yes to confirm")
		}

		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.ClearAll(ctx); err != nil {
			return err
		}
		zap.L().Info("all data cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
		return nil
	},
}

func init() {
	wipeCmd.Flags().Bool("yes", false, "confirm deletion")
	rootCmd.AddCommand(wipeCmd)
}
