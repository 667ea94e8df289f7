package main

import (
	"github.com/spf13/cobra"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Print the effective benchmarks (defaults, config, user settings)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		bm, err := env.Service.Benchmarks(ctx)
		if err != nil {
			return err
		}
		return writeYAML(cmd, bm)
	},
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}
