package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sells-group/bizhealth/internal/format"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/monitoring"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize stored history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		hours := cfg.Monitoring.LookbackWindowHours
		if cmd.Flags().Changed("lookback-hours") {
			hours, _ = cmd.Flags().GetInt("lookback-hours")
		}

		snap, err := monitoring.NewCollector(env.Store).Collect(ctx, hours)
		if err != nil {
			return err
		}
		settings, err := env.Store.LoadSettings(ctx)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), snap)
		}
		writeStats(cmd.OutOrStdout(), snap, settings)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("lookback-hours", 0, "only analyses from the last N hours (0 = all; default from config)")
	statsCmd.Flags().Bool("json", false, "print the snapshot as JSON")
	rootCmd.AddCommand(statsCmd)
}

func writeStats(w io.Writer, snap *monitoring.Snapshot, settings model.AppSettings) {
	lang := settings.Language
	window := "all"
	if snap.LookbackHours > 0 {
		window = fmt.Sprintf("last %dh", snap.LookbackHours)
	}

	t := table.New().Headers("METRIC", "VALUE")
	t.Row("window", window)
	t.Row("analyses", format.Number(int64(snap.Count), lang))
	if snap.Count > 0 {
		t.Row("avg percentage", format.Percentage(snap.AvgPercentage, 1, lang))
		t.Row("critical share", format.Percentage(snap.CriticalShare*100, 1, lang))
		t.Row("total annual loss", format.Currency(snap.TotalAnnualRevenueLoss, settings.Currency, lang))
		t.Row("avg annual loss", format.Currency(snap.AvgAnnualRevenueLoss, settings.Currency, lang))
		if snap.WeakestPillar != "" {
			t.Row("weakest pillar", format.PillarLabel(snap.WeakestPillar, lang))
		}
	}
	fmt.Fprintln(w, t.Render())
	if snap.Count == 0 {
		return
	}

	statuses := make([]model.ScoreStatus, 0, len(snap.StatusCounts))
	for s := range snap.StatusCounts {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	st := table.New().Headers("STATUS", "COUNT")
	for _, s := range statuses {
		st.Row(format.StatusLabel(s, lang), fmt.Sprintf("%d", snap.StatusCounts[s]))
	}
	fmt.Fprintln(w, st.Render())

	pt := table.New().Headers("PILLAR", "AVG PERCENT")
	for _, p := range model.PillarNames() {
		if v, ok := snap.AvgPillarPercentage[p]; ok {
			pt.Row(format.PillarLabel(p, lang), format.Percentage(v, 1, lang))
		}
	}
	fmt.Fprintln(w, pt.Render())
}
