package main

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/bizhealth/internal/analysis"
	"github.com/sells-group/bizhealth/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score one business from a YAML or JSON input file",
	Long: `Reads the sixteen input metrics from a YAML or JSON file (or stdin when no
file or "-" is given), validates them, calculates the health score and
renders a report.

Examples:
  bizhealth analyze input.yaml
  bizhealth analyze input.json --format markdown --output report.md --lang en
  cat input.yaml | bizhealth analyze --revenue 1200000 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("format", report.FormatConsole, "report format: console, markdown, json, pdf")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.Float64("revenue", 0, "actual annual revenue (default baseline when 0)")
	f.Bool("save", false, "store the result as current analysis and in history")
	f.String("currency", "", "display currency (USD, EUR, GBP, CHF)")
	f.String("lang", "", "display language (de, en)")
	rootCmd.AddCommand(analyzeCmd)
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		return data, eris.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(path)
	return data, eris.Wrapf(err, "read %s", path)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f := cmd.Flags()
	format, _ := f.GetString("format")
	output, _ := f.GetString("output")
	revenue, _ := f.GetFloat64("revenue")
	save, _ := f.GetBool("save")
	currency, _ := f.GetString("currency")
	lang, _ := f.GetString("lang")

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	env, err := initEnv(ctx, "cli", nil)
	if err != nil {
		return err
	}
	defer env.Close()

	req := analysis.Request{Document: doc, Save: save, Source: "cli"}
	if f.Changed("revenue") {
		req.AnnualRevenue = &revenue
	}
	result, err := env.Service.Analyze(ctx, req)
	if err != nil {
		return err
	}

	color := output == "" && isatty.IsTerminal(os.Stdout.Fd())
	opts, err := reportOptions(ctx, env.Store, currency, lang, color)
	if err != nil {
		return err
	}
	renderer, err := report.New(format, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, result); err != nil {
		return err
	}
	if output != "" {
		return eris.Wrapf(os.WriteFile(output, buf.Bytes(), 0o644), "write %s", output)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
