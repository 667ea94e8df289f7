package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/bizhealth/internal/analysis"
	"github.com/sells-group/bizhealth/internal/format"
	"github.com/sells-group/bizhealth/internal/model"
	"github.com/sells-group/bizhealth/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch <glob>...",
	Short: "Score many input files concurrently",
	Long: `Expands each doublestar glob (for example "inputs/**/*.yaml"), scores every
matching file concurrently and prints one summary row per file. Files that
fail validation are reported but do not stop the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		save, _ := cmd.Flags().GetBool("save")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		files, err := expandGlobs(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return eris.New("batch: no files matched")
		}

		results := processBatch(ctx, files, concurrency, env.Service)
		if save {
			if err := saveBatch(ctx, env.Store, results); err != nil {
				return err
			}
		}

		settings, err := env.Store.LoadSettings(ctx)
		if err != nil {
			return eris.Wrap(err, "load settings")
		}
		writeBatchSummary(cmd.OutOrStdout(), results, settings)

		if n := countFailed(results); n > 0 {
			return eris.Errorf("batch: %d of %d file(s) failed", n, len(results))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().Bool("save", false, "store every successful result in history")
	batchCmd.Flags().Int("concurrency", 0, "parallel calculations (default batch.concurrency)")
	rootCmd.AddCommand(batchCmd)
}

// batchResult is the outcome for one input file.
type batchResult struct {
	File   string
	Result *model.BusinessHealthResult
	Err    error
}

// expandGlobs returns the sorted, de-duplicated files matched by patterns.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, eris.Wrapf(err, "batch: bad pattern %q", p)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// processBatch scores files with at most concurrency calculations in flight.
// Per-file failures are recorded in the result rather than aborting.
func processBatch(ctx context.Context, files []string, concurrency int, svc *analysis.Service) []batchResult {
	results := make([]batchResult, len(files))

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, file := range files {
		g.Go(func() error {
			results[i].File = file
			doc, err := readInput(file, nil)
			if err != nil {
				results[i].Err = err
				return nil
			}
			r, err := svc.Analyze(gctx, analysis.Request{Document: doc, Source: "cli"})
			if err != nil {
				zap.L().Warn("batch: analysis failed", zap.String("file", file), zap.Error(err))
				results[i].Err = err
				return nil
			}
			results[i].Result = r
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// saveBatch stores successful results in file order so history reads back
// newest-last-file-first.
func saveBatch(ctx context.Context, st store.Store, results []batchResult) error {
	for _, br := range results {
		if br.Result == nil {
			continue
		}
		if err := st.SaveAnalysis(ctx, br.Result); err != nil {
			return eris.Wrapf(err, "batch: save %s", br.File)
		}
	}
	return nil
}

func countFailed(results []batchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func writeBatchSummary(w io.Writer, results []batchResult, settings model.AppSettings) {
	t := table.New().Headers("FILE", "STATUS", "SCORE", "PERCENT", "ANNUAL LOSS")
	for _, br := range results {
		if br.Err != nil {
			t.Row(br.File, "error", "-", "-", br.Err.Error())
			continue
		}
		r := br.Result
		t.Row(
			br.File,
			format.StatusLabel(r.Status, settings.Language),
			fmt.Sprintf("%d/%d", r.TotalScore, r.MaxScore),
			format.Percentage(r.Percentage, 1, settings.Language),
			format.Currency(r.AnnualRevenueLoss, settings.Currency, settings.Language),
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d file(s), %d failed\n", len(results), countFailed(results))
}
