package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/bizhealth/internal/format"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/report"
	"github.com/sells-group/bizhealth/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show and delete stored analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		filter := store.HistoryFilter{Status: model.ScoreStatus(status), Limit: limit, Offset: offset}
		if status != "" && !filter.Status.Valid() {
			return eris.Errorf("invalid --status %q", status)
		}

		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		history, err := env.Store.ListHistory(ctx, filter)
		if err != nil {
			return err
		}
		settings, err := env.Store.LoadSettings(ctx)
		if err != nil {
			return err
		}
		writeHistoryTable(cmd.OutOrStdout(), history, settings)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		r, err := env.Store.GetAnalysis(ctx, args[0])
		if err != nil {
			return err
		}
		return renderTo(cmd, env.Store, r)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one analysis from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.DeleteAnalysis(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every analysis from history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.ClearHistory(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	},
}

func init() {
	historyListCmd.Flags().String("status", "", "only this status (critical, needs_improvement, good, excellent)")
	historyListCmd.Flags().Int("limit", 0, "max rows (0 = all)")
	historyListCmd.Flags().Int("offset", 0, "rows to skip")
	addRenderFlags(historyShowCmd)

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func writeHistoryTable(w io.Writer, history []model.BusinessHealthResult, settings model.AppSettings) {
	if len(history) == 0 {
		fmt.Fprintln(w, "no analyses stored")
		return
	}
	t := table.New().Headers("ID", "DATE", "STATUS", "SCORE", "PERCENT", "ANNUAL LOSS")
	for i := range history {
		r := &history[i]
		t.Row(
			r.ID,
			format.Date(r.Time(), settings.Language),
			format.StatusLabel(r.Status, settings.Language),
			fmt.Sprintf("%d/%d", r.TotalScore, r.MaxScore),
			format.Percentage(r.Percentage, 1, settings.Language),
			format.Currency(r.AnnualRevenueLoss, settings.Currency, settings.Language),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// addRenderFlags adds the report flags shared by show-style commands.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", report.FormatConsole, "report format: console, markdown, json, pdf")
	cmd.Flags().String("currency", "", "display currency (USD, EUR, GBP, CHF)")
	cmd.Flags().String("lang", "", "display language (de, en)")
}

// renderTo renders r to the command's output using its render flags.
func renderTo(cmd *cobra.Command, st store.Store, r *model.BusinessHealthResult) error {
	name, _ := cmd.Flags().GetString("format")
	currency, _ := cmd.Flags().GetString("currency")
	lang, _ := cmd.Flags().GetString("lang")

	opts, err := reportOptions(cmd.Context(), st, currency, lang, false)
	if err != nil {
		return err
	}
	renderer, err := report.New(name, opts)
	if err != nil {
		return err
	}
	return renderer.Render(cmd.OutOrStdout(), r)
}
