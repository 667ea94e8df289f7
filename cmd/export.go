package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export current analysis, history and settings",
	Long: `Exports stored data. json writes the full bundle; csv and xlsx write the
history table. Without --output, json and csv go to stdout and xlsx is written
to a dated file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		switch format {
		case export.FormatJSON, export.FormatCSV, export.FormatXLSX:
		default:
			return eris.Errorf("invalid --format %q (json, csv, xlsx)", format)
		}

		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		now := time.Now()
		b, err := export.Collect(ctx, env.Store, now)
		if err != nil {
			return err
		}

		if output == "" && format == export.FormatXLSX {
			output = export.FileName(format, now)
		}
		if output == "" || output == "-" {
			return export.Write(cmd.OutOrStdout(), format, b)
		}
		if err := writeFile(output, func(w io.Writer) error { return export.Write(w, format, b) }); err != nil {
			return err
		}

		zap.L().Info("export written",
			zap.String("path", output),
			zap.String("format", format),
			zap.Int("history", len(b.History)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d analyses)\n", output, len(b.History))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", export.FormatJSON, "json, csv or xlsx")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout; xlsx defaults to a dated file)")
	rootCmd.AddCommand(exportCmd)
}

// writeFile creates path and hands it to fn, closing it afterwards.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}
